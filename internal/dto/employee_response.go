package dto

import (
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
)

// EmployeeResponse is the public representation of an employee. The credential
// hash never leaves the service layer.
type EmployeeResponse struct {
	EmployeeID      string `json:"employeeID"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	VacationBalance int    `json:"vacationBalance"`
	SickBalance     int    `json:"sickBalance"`
	CasualBalance   int    `json:"casualBalance"`
}

// ToEmployeeResponse converts a domain.Employee to its response DTO.
func ToEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:      emp.EmployeeID,
		Name:            emp.Name,
		Email:           emp.Email,
		Role:            string(emp.Role),
		VacationBalance: emp.Balances.Vacation,
		SickBalance:     emp.Balances.Sick,
		CasualBalance:   emp.Balances.Casual,
	}
}
