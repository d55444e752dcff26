package domain

import "time"

// LeaveType is the balance category a request draws from.
type LeaveType string

const (
	LeaveVacation LeaveType = "VACATION"
	LeaveSick     LeaveType = "SICK"
	LeaveCasual   LeaveType = "CASUAL"
)

// IsValid checks whether the leave type is one of the known categories.
func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveVacation, LeaveSick, LeaveCasual:
		return true
	}
	return false
}

// LeaveStatus is the lifecycle state of a leave request.
// PENDING transitions at most once to APPROVED or REJECTED.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

// IsTerminal reports whether no further transition is permitted.
func (s LeaveStatus) IsTerminal() bool {
	return s == LeaveApproved || s == LeaveRejected
}

// IsDecision reports whether the status is a valid manager decision.
func (s LeaveStatus) IsDecision() bool {
	return s == LeaveApproved || s == LeaveRejected
}

// LeaveRequest represents one leave request in the domain.
type LeaveRequest struct {
	RequestID      string      `json:"requestID"` // Primary key (UUID)
	EmployeeID     string      `json:"employeeID"`
	EmployeeName   string      `json:"employeeName,omitempty"` // Populated on joined reads only
	LeaveType      LeaveType   `json:"leaveType"`
	StartDate      time.Time   `json:"startDate"` // Inclusive
	EndDate        time.Time   `json:"endDate"`   // Inclusive, >= StartDate
	Reason         string      `json:"reason"`
	Status         LeaveStatus `json:"status"`
	ManagerComment *string     `json:"managerComment,omitempty"`
	AuditFields
}

// DayCount returns the inclusive span length of the request in whole days.
// start == end counts as one day. Dates are normalized to UTC midnight at
// creation, so the division is exact.
func (r LeaveRequest) DayCount() int {
	return int(r.EndDate.Sub(r.StartDate)/(24*time.Hour)) + 1
}
