package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/riyazsharif/employee-leave-managment-system/internal/apperrors"
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	portsrepo "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/repositories"
	portssvc "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/services"
	"github.com/riyazsharif/employee-leave-managment-system/internal/dto"
	"github.com/riyazsharif/employee-leave-managment-system/internal/middleware"
	"github.com/riyazsharif/employee-leave-managment-system/internal/utils"
)

// employeeService provides registration, authentication and employee reads.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo}
}

// Ensure employeeService implements the portssvc.EmployeeSvcFacade interface
var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// RegisterEmployee creates a new employee account with default balances.
//
// Re-registration with an existing email and the same role is a conflict.
// Re-registration with a different role upgrades (or downgrades) the account,
// but only when the caller proves ownership by presenting the current
// password; the stored credential is never overwritten on that path.
func (s *employeeService) RegisterEmployee(ctx context.Context, req dto.RegisterRequest) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleEmployee
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	existing, err := s.employeeRepo.FindEmployeeByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing registration: %w", err)
	}

	now := time.Now().UTC()

	if existing != nil {
		if existing.Role == role {
			return nil, fmt.Errorf("email already registered with role %s: %w", role, apperrors.ErrDuplicate)
		}
		// Role change path: require the current password before touching the
		// account. The credential hash itself stays as it is.
		if !utils.CheckPasswordHash(req.Password, existing.PasswordHash) {
			logger.Warn("Role change rejected, password mismatch", slog.String("employee_id", existing.EmployeeID))
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		if err := s.employeeRepo.UpdateEmployeeRole(ctx, existing.EmployeeID, req.Name, role, existing.EmployeeID, now); err != nil {
			return nil, fmt.Errorf("failed to update role: %w", err)
		}
		logger.Info("Employee role updated",
			slog.String("employee_id", existing.EmployeeID),
			slog.String("role", string(role)))
		existing.Name = req.Name
		existing.Role = role
		existing.LastUpdatedAt = now
		existing.LastUpdatedBy = existing.EmployeeID
		return existing, nil
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employeeID := uuid.NewString()
	employee := domain.Employee{
		EmployeeID:   employeeID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
		Balances:     domain.DefaultLeaveBalances(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     employeeID, // Self-registration
			LastUpdatedAt: now,
			LastUpdatedBy: employeeID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, err
	}

	logger.Info("Employee registered",
		slog.String("employee_id", employeeID),
		slog.String("role", string(role)))
	return &employee, nil
}

// AuthenticateEmployee verifies credentials and returns the employee. The
// same ErrUnauthorized comes back for an unknown email and a wrong password.
func (s *employeeService) AuthenticateEmployee(ctx context.Context, email, password string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up employee for login: %w", err)
	}
	if !utils.CheckPasswordHash(password, employee.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return employee, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return employee, nil
}
