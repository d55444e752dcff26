package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
)

// dateLayout is the wire format for leave dates.
const dateLayout = "2006-01-02"

// SubmitLeaveStructValidation enforces the cross-field date ordering rule the
// per-field binding tags cannot express. Registered against
// SubmitLeaveRequest at router setup.
func SubmitLeaveStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(SubmitLeaveRequest)
	start, startErr := time.Parse(dateLayout, req.StartDate)
	end, endErr := time.Parse(dateLayout, req.EndDate)
	if startErr == nil && endErr == nil && end.Before(start) {
		sl.ReportError(req.EndDate, "endDate", "EndDate", "gtefield", "StartDate")
	}
}

// SubmitLeaveRequest is the payload for POST /leaves. Dates are inclusive
// calendar days.
type SubmitLeaveRequest struct {
	LeaveType string `json:"leaveType" binding:"required,oneof=VACATION SICK CASUAL"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" binding:"required"`
}

// DecisionRequest is the payload for POST /leaves/:id/decision.
type DecisionRequest struct {
	Status  string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Comment *string `json:"comment"`
}

// LeaveResponse is the public representation of a leave request.
type LeaveResponse struct {
	RequestID      string  `json:"requestID"`
	EmployeeID     string  `json:"employeeID"`
	EmployeeName   string  `json:"employeeName,omitempty"`
	LeaveType      string  `json:"leaveType"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	ManagerComment *string `json:"managerComment,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// ToLeaveResponse converts a domain.LeaveRequest to its response DTO.
func ToLeaveResponse(lr domain.LeaveRequest) LeaveResponse {
	return LeaveResponse{
		RequestID:      lr.RequestID,
		EmployeeID:     lr.EmployeeID,
		EmployeeName:   lr.EmployeeName,
		LeaveType:      string(lr.LeaveType),
		StartDate:      lr.StartDate.Format(dateLayout),
		EndDate:        lr.EndDate.Format(dateLayout),
		Reason:         lr.Reason,
		Status:         string(lr.Status),
		ManagerComment: lr.ManagerComment,
		CreatedAt:      lr.CreatedAt.Format(time.RFC3339),
	}
}

// ToLeaveResponseSlice converts a slice of domain requests to response DTOs.
func ToLeaveResponseSlice(lrs []domain.LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, len(lrs))
	for i, lr := range lrs {
		out[i] = ToLeaveResponse(lr)
	}
	return out
}

// MyLeavesResponse bundles the employee snapshot with their own requests for
// GET /leaves/me.
type MyLeavesResponse struct {
	Employee EmployeeResponse `json:"employee"`
	Leaves   []LeaveResponse  `json:"leaves"`
}

// CalendarEntryResponse is one approved leave on the shared calendar.
type CalendarEntryResponse struct {
	RequestID    string `json:"requestID"`
	EmployeeID   string `json:"employeeID"`
	EmployeeName string `json:"employeeName"`
	LeaveType    string `json:"leaveType"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

// ToCalendarResponse converts approved domain requests to calendar entries.
func ToCalendarResponse(lrs []domain.LeaveRequest) []CalendarEntryResponse {
	out := make([]CalendarEntryResponse, len(lrs))
	for i, lr := range lrs {
		out[i] = CalendarEntryResponse{
			RequestID:    lr.RequestID,
			EmployeeID:   lr.EmployeeID,
			EmployeeName: lr.EmployeeName,
			LeaveType:    string(lr.LeaveType),
			StartDate:    lr.StartDate.Format(dateLayout),
			EndDate:      lr.EndDate.Format(dateLayout),
		}
	}
	return out
}
