package services

import (
	"context"

	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	"github.com/riyazsharif/employee-leave-managment-system/internal/dto"
)

// EmployeeReaderSvc defines read operations for employee data.
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves an employee by ID.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
}

// EmployeeWriterSvc defines registration and credential operations.
type EmployeeWriterSvc interface {
	// RegisterEmployee creates a new employee account, or upgrades the role of
	// an existing account when the caller re-authenticates with the current
	// password.
	RegisterEmployee(ctx context.Context, req dto.RegisterRequest) (*domain.Employee, error)

	// AuthenticateEmployee verifies email+password and returns the employee on
	// success, ErrUnauthorized otherwise.
	AuthenticateEmployee(ctx context.Context, email, password string) (*domain.Employee, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces.
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}
