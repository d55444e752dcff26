package mapping

import (
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	"github.com/riyazsharif/employee-leave-managment-system/internal/models"
)

// ToModelLeaveRequest converts a domain.LeaveRequest to models.LeaveRequest.
func ToModelLeaveRequest(d domain.LeaveRequest) models.LeaveRequest {
	m := models.LeaveRequest{
		RequestID:   d.RequestID,
		EmployeeID:  d.EmployeeID,
		LeaveType:   string(d.LeaveType),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Reason:      d.Reason,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.ManagerComment != nil {
		m.ManagerComment.String = *d.ManagerComment
		m.ManagerComment.Valid = true
	}
	return m
}

// ToDomainLeaveRequest converts a models.LeaveRequest to domain.LeaveRequest.
func ToDomainLeaveRequest(m models.LeaveRequest) domain.LeaveRequest {
	d := domain.LeaveRequest{
		RequestID:    m.RequestID,
		EmployeeID:   m.EmployeeID,
		EmployeeName: m.EmployeeName,
		LeaveType:    domain.LeaveType(m.LeaveType),
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Reason:       m.Reason,
		Status:       domain.LeaveStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.ManagerComment.Valid {
		comment := m.ManagerComment.String
		d.ManagerComment = &comment
	}
	return d
}

// ToDomainLeaveRequestSlice converts a slice of models.LeaveRequest to domain form.
func ToDomainLeaveRequestSlice(ms []models.LeaveRequest) []domain.LeaveRequest {
	ds := make([]domain.LeaveRequest, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLeaveRequest(m)
	}
	return ds
}
