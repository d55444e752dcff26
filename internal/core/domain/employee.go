package domain

// Role is the access level of an employee.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
)

// IsValid checks whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager:
		return true
	}
	return false
}

// DefaultLeaveBalances returns the balances granted to a new employee.
func DefaultLeaveBalances() LeaveBalances {
	return LeaveBalances{Vacation: 15, Sick: 10, Casual: 7}
}

// LeaveBalances holds the per-category day counters for one employee.
// Each counter is kept non-negative; the decision workflow is the only mutator.
type LeaveBalances struct {
	Vacation int `json:"vacation"`
	Sick     int `json:"sick"`
	Casual   int `json:"casual"`
}

// ForType returns the balance for the given leave type.
func (b LeaveBalances) ForType(t LeaveType) int {
	switch t {
	case LeaveVacation:
		return b.Vacation
	case LeaveSick:
		return b.Sick
	case LeaveCasual:
		return b.Casual
	}
	return 0
}

// Employee represents an employee of the company in the domain.
type Employee struct {
	EmployeeID   string        `json:"employeeID"` // Primary key (UUID)
	Name         string        `json:"name"`
	Email        string        `json:"email"` // Unique
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Balances     LeaveBalances `json:"balances"`
	AuditFields
}
