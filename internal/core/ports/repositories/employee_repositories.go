package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
)

// EmployeeReader defines read operations for employee data.
type EmployeeReader interface {
	// FindEmployeeByID retrieves an employee by their unique identifier.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByEmail retrieves an employee by their unique email.
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
}

// EmployeeWriter defines write operations for employee data.
type EmployeeWriter interface {
	// SaveEmployee inserts a new employee row.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployeeRole updates the role and display name of an existing
	// employee. The credential hash is deliberately not touched here.
	UpdateEmployeeRole(ctx context.Context, employeeID string, name string, role domain.Role, updatedBy string, updatedAt time.Time) error
}

// BalanceLedger is the only mutation path for leave balances. Both methods
// require the caller's open transaction so the check-then-deduct sequence
// stays inside one atomic unit.
type BalanceLedger interface {
	// FindEmployeeForUpdate retrieves an employee row and locks it for update.
	// Must be called within a transaction.
	FindEmployeeForUpdate(ctx context.Context, tx pgx.Tx, employeeID string) (*domain.Employee, error)

	// DeductBalanceInTx subtracts days from the balance column matching the
	// leave type. Must be called within the same transaction that locked the
	// row via FindEmployeeForUpdate.
	DeductBalanceInTx(ctx context.Context, tx pgx.Tx, employeeID string, leaveType domain.LeaveType, days int, updatedBy string, now time.Time) error
}

// EmployeeRepositoryFacade combines all employee-related repository interfaces.
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
	BalanceLedger
}
