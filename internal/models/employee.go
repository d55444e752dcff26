package models

// Employee represents a row of the employees table.
type Employee struct {
	EmployeeID      string `db:"employee_id"`
	Name            string `db:"name"`
	Email           string `db:"email"`
	PasswordHash    string `db:"password_hash"`
	Role            string `db:"role"`
	VacationBalance int    `db:"vacation_balance"`
	SickBalance     int    `db:"sick_balance"`
	CasualBalance   int    `db:"casual_balance"`
	AuditFields
}
