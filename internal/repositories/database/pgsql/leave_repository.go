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

type PgxLeaveRepository struct {
	BaseRepository
	ledger portsrepo.BalanceLedger
}

// newPgxLeaveRepository creates a new repository for leave request data. The
// balance ledger is injected so approval can lock and deduct the owner's
// balance inside the decision transaction.
func newPgxLeaveRepository(pool *pgxpool.Pool, ledger portsrepo.BalanceLedger) portsrepo.LeaveRepositoryWithTx {
	return &PgxLeaveRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledger:         ledger,
	}
}

// Ensure PgxLeaveRepository implements portsrepo.LeaveRepositoryWithTx
var _ portsrepo.LeaveRepositoryWithTx = (*PgxLeaveRepository)(nil)

func (r *PgxLeaveRepository) SaveLeaveRequest(ctx context.Context, request domain.LeaveRequest) error {
	m := mapping.ToModelLeaveRequest(request)
	query := `
		INSERT INTO leave_requests (
			request_id, employee_id, leave_type, start_date, end_date, reason,
			status, manager_comment,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.EmployeeID,
		m.LeaveType,
		m.StartDate,
		m.EndDate,
		m.Reason,
		m.Status,
		m.ManagerComment,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert leave request "+m.RequestID, err)
	}
	return nil
}

func (r *PgxLeaveRepository) FindLeaveRequestByID(ctx context.Context, requestID string) (*domain.LeaveRequest, error) {
	query := `
		SELECT request_id, employee_id, leave_type, start_date, end_date, reason,
		       status, manager_comment,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM leave_requests
		WHERE request_id = $1;
	`
	m, err := scanLeaveRequest(r.Pool.QueryRow(ctx, query, requestID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find leave request "+requestID, err)
	}
	d := mapping.ToDomainLeaveRequest(*m)
	return &d, nil
}

func (r *PgxLeaveRepository) ListLeavesByEmployee(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error) {
	query := `
		SELECT request_id, employee_id, leave_type, start_date, end_date, reason,
		       status, manager_comment,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY start_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query leaves for employee "+employeeID, err)
	}
	defer rows.Close()

	return collectLeaveRows(rows, false)
}

func (r *PgxLeaveRepository) ListAllLeaves(ctx context.Context) ([]domain.LeaveRequest, error) {
	query := `
		SELECT lr.request_id, lr.employee_id, e.name AS employee_name,
		       lr.leave_type, lr.start_date, lr.end_date, lr.reason,
		       lr.status, lr.manager_comment,
		       lr.created_at, lr.created_by, lr.last_updated_at, lr.last_updated_by
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.employee_id
		ORDER BY lr.start_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query all leave requests", err)
	}
	defer rows.Close()

	return collectLeaveRows(rows, true)
}

func (r *PgxLeaveRepository) ListApprovedLeaves(ctx context.Context) ([]domain.LeaveRequest, error) {
	query := `
		SELECT lr.request_id, lr.employee_id, e.name AS employee_name,
		       lr.leave_type, lr.start_date, lr.end_date, lr.reason,
		       lr.status, lr.manager_comment,
		       lr.created_at, lr.created_by, lr.last_updated_at, lr.last_updated_by
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.employee_id
		WHERE lr.status = 'APPROVED'
		ORDER BY lr.start_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query approved leave requests", err)
	}
	defer rows.Close()

	return collectLeaveRows(rows, true)
}

// decisionLockTimeout bounds how long a decision transaction waits on row
// locks before giving up with a retryable error.
const decisionLockTimeout = "3s"

// ApplyDecision transitions one PENDING request to a terminal state and, on
// approval, deducts its day count from the owner's matching balance. The
// request row is locked first and its status re-checked under the lock, so
// concurrent decisions on the same request serialize: the loser blocks until
// the winner commits, then observes the terminal status and gets
// ErrAlreadyDecided. Only a wait exceeding the transaction's lock timeout
// surfaces as ErrLockTimeout.
func (r *PgxLeaveRepository) ApplyDecision(ctx context.Context, requestID string, decision domain.LeaveStatus, comment *string, decidedBy string, now time.Time) (*domain.LeaveRequest, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+decisionLockTimeout+"';"); err != nil {
		return nil, apperrors.NewAppError(500, "failed to set lock timeout", err)
	}

	// 1. Lock the request row, waiting for any in-flight decision to finish.
	lockQuery := `
		SELECT request_id, employee_id, leave_type, start_date, end_date, reason,
		       status, manager_comment,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM leave_requests
		WHERE request_id = $1
		FOR UPDATE;
	`
	m, err := scanLeaveRequest(tx.QueryRow(ctx, lockQuery, requestID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
			return nil, fmt.Errorf("timed out waiting to lock leave request %s: %w", requestID, apperrors.ErrLockTimeout)
		}
		return nil, apperrors.NewAppError(500, "failed to lock leave request "+requestID, err)
	}
	request := mapping.ToDomainLeaveRequest(*m)

	// 2. Re-check status under the lock. A decision that raced us and
	// committed first is visible here.
	if request.Status != domain.LeavePending {
		return nil, fmt.Errorf("leave request %s is %s: %w", requestID, request.Status, apperrors.ErrAlreadyDecided)
	}

	// 3. Write the terminal status and comment.
	updateQuery := `
		UPDATE leave_requests
		SET status = $2, manager_comment = $3, last_updated_at = $4, last_updated_by = $5
		WHERE request_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, requestID, string(decision), comment, now, decidedBy); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update leave request "+requestID, err)
	}

	// 4. On approval, lock the owner's balance row, check, deduct.
	if decision == domain.LeaveApproved {
		owner, err := r.ledger.FindEmployeeForUpdate(ctx, tx, request.EmployeeID)
		if err != nil {
			return nil, err
		}

		days := request.DayCount()
		if owner.Balances.ForType(request.LeaveType) < days {
			return nil, fmt.Errorf("%s balance %d < %d days: %w",
				request.LeaveType, owner.Balances.ForType(request.LeaveType), days, apperrors.ErrInsufficientBalance)
		}
		if err := r.ledger.DeductBalanceInTx(ctx, tx, request.EmployeeID, request.LeaveType, days, decidedBy, now); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	request.Status = decision
	request.ManagerComment = comment
	request.LastUpdatedAt = now
	request.LastUpdatedBy = decidedBy
	return &request, nil
}

// scanLeaveRequest scans a single row into a model. withName indicates the
// query joined the owner's display name.
func scanLeaveRequest(row pgx.Row, withName bool) (*models.LeaveRequest, error) {
	var m models.LeaveRequest
	dest := []any{&m.RequestID, &m.EmployeeID}
	if withName {
		dest = append(dest, &m.EmployeeName)
	}
	dest = append(dest,
		&m.LeaveType,
		&m.StartDate,
		&m.EndDate,
		&m.Reason,
		&m.Status,
		&m.ManagerComment,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &m, nil
}

func collectLeaveRows(rows pgx.Rows, withName bool) ([]domain.LeaveRequest, error) {
	requests := []models.LeaveRequest{}
	for rows.Next() {
		m, err := scanLeaveRequest(rows, withName)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan leave request row", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating leave request rows", err)
	}
	return mapping.ToDomainLeaveRequestSlice(requests), nil
}
