package models

import (
	"database/sql"
	"time"
)

// LeaveRequest represents a row of the leave_requests table.
type LeaveRequest struct {
	RequestID      string         `db:"request_id"`
	EmployeeID     string         `db:"employee_id"`
	EmployeeName   string         `db:"employee_name"` // From join, not a column
	LeaveType      string         `db:"leave_type"`
	StartDate      time.Time      `db:"start_date"`
	EndDate        time.Time      `db:"end_date"`
	Reason         string         `db:"reason"`
	Status         string         `db:"status"`
	ManagerComment sql.NullString `db:"manager_comment"`
	AuditFields
}
