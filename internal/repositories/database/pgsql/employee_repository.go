package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riyazsharif/employee-leave-managment-system/internal/apperrors"
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	portsrepo "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/repositories"
	"github.com/riyazsharif/employee-leave-managment-system/internal/models"
	"github.com/riyazsharif/employee-leave-managment-system/internal/utils/mapping"
)

// Postgres error codes surfaced as application errors.
const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
	pgCheckViolation   = "23514"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeRepositoryFacade
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `employee_id, name, email, password_hash, role,
	vacation_balance, sick_balance, casual_balance,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.Role,
		&m.VacationBalance,
		&m.SickBalance,
		&m.CasualBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	emp := mapping.ToDomainEmployee(m)
	return &emp, nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.Role,
		m.VacationBalance,
		m.SickBalance,
		m.CasualBalance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("email %s already registered: %w", m.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`
	emp, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by ID %s: %w", employeeID, err)
	}
	return emp, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1;`
	emp, err := scanEmployee(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find employee by email: %w", err)
	}
	return emp, nil
}

func (r *PgxEmployeeRepository) UpdateEmployeeRole(ctx context.Context, employeeID string, name string, role domain.Role, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE employees
		SET name = $2, role = $3, last_updated_at = $4, last_updated_by = $5
		WHERE employee_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, employeeID, name, string(role), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update role for employee %s: %w", employeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", employeeID, apperrors.ErrNotFound)
	}
	return nil
}

// FindEmployeeForUpdate retrieves an employee row and locks it for update.
// Must be called within a transaction. The wait queues behind any concurrent
// holder so balance deductions serialize; only a wait exceeding the
// transaction's lock timeout fails, and is retryable.
func (r *PgxEmployeeRepository) FindEmployeeForUpdate(ctx context.Context, tx pgx.Tx, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1 FOR UPDATE;`
	emp, err := scanEmployee(tx.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
			return nil, fmt.Errorf("timed out waiting to lock employee %s: %w", employeeID, apperrors.ErrLockTimeout)
		}
		return nil, fmt.Errorf("failed to lock employee %s: %w", employeeID, err)
	}
	return emp, nil
}

// DeductBalanceInTx subtracts days from the balance column matching the leave
// type. The column is selected by an exhaustive switch over the category enum;
// no caller-provided string ever reaches the SQL text.
func (r *PgxEmployeeRepository) DeductBalanceInTx(ctx context.Context, tx pgx.Tx, employeeID string, leaveType domain.LeaveType, days int, updatedBy string, now time.Time) error {
	var query string
	switch leaveType {
	case domain.LeaveVacation:
		query = `UPDATE employees SET vacation_balance = vacation_balance - $2, last_updated_at = $3, last_updated_by = $4 WHERE employee_id = $1;`
	case domain.LeaveSick:
		query = `UPDATE employees SET sick_balance = sick_balance - $2, last_updated_at = $3, last_updated_by = $4 WHERE employee_id = $1;`
	case domain.LeaveCasual:
		query = `UPDATE employees SET casual_balance = casual_balance - $2, last_updated_at = $3, last_updated_by = $4 WHERE employee_id = $1;`
	default:
		return fmt.Errorf("%w: unknown leave type %q", apperrors.ErrValidation, leaveType)
	}

	cmdTag, err := tx.Exec(ctx, query, employeeID, days, now, updatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
			// The non-negative CHECK constraint is the last line of defense;
			// the workflow verifies the balance before deducting.
			return fmt.Errorf("balance for employee %s would go negative: %w", employeeID, apperrors.ErrInsufficientBalance)
		}
		return fmt.Errorf("failed to deduct balance for employee %s: %w", employeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s not found during balance deduction: %w", employeeID, apperrors.ErrNotFound)
	}
	return nil
}
