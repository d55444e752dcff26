package mapping

import (
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	"github.com/riyazsharif/employee-leave-managment-system/internal/models"
)

// ToModelEmployee converts a domain.Employee to models.Employee.
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:      d.EmployeeID,
		Name:            d.Name,
		Email:           d.Email,
		PasswordHash:    d.PasswordHash,
		Role:            string(d.Role),
		VacationBalance: d.Balances.Vacation,
		SickBalance:     d.Balances.Sick,
		CasualBalance:   d.Balances.Casual,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a models.Employee to domain.Employee.
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:   m.EmployeeID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		Balances: domain.LeaveBalances{
			Vacation: m.VacationBalance,
			Sick:     m.SickBalance,
			Casual:   m.CasualBalance,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
