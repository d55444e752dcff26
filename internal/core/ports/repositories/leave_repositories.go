package repositories

import (
	"context"
	"time"

	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
)

// LeaveReader defines read operations for leave request data.
type LeaveReader interface {
	// FindLeaveRequestByID retrieves a single leave request.
	FindLeaveRequestByID(ctx context.Context, requestID string) (*domain.LeaveRequest, error)

	// ListLeavesByEmployee retrieves all requests owned by one employee,
	// ordered by start date descending.
	ListLeavesByEmployee(ctx context.Context, employeeID string) ([]domain.LeaveRequest, error)

	// ListAllLeaves retrieves every request joined with the owner's display
	// name, ordered by start date descending.
	ListAllLeaves(ctx context.Context) ([]domain.LeaveRequest, error)

	// ListApprovedLeaves retrieves APPROVED requests joined with the owner's
	// display name, ordered by start date ascending.
	ListApprovedLeaves(ctx context.Context) ([]domain.LeaveRequest, error)
}

// LeaveWriter defines write operations for leave request data.
type LeaveWriter interface {
	// SaveLeaveRequest inserts a new PENDING request.
	SaveLeaveRequest(ctx context.Context, request domain.LeaveRequest) error

	// ApplyDecision transitions a PENDING request to a terminal state and, on
	// approval, deducts the request's day count from the owner's matching
	// balance. The whole sequence runs in one database transaction with the
	// request row and (on approval) the employee row locked for update.
	// Returns the decided request, or ErrNotFound, ErrAlreadyDecided,
	// ErrInsufficientBalance or ErrLockTimeout with no state change.
	ApplyDecision(ctx context.Context, requestID string, decision domain.LeaveStatus, comment *string, decidedBy string, now time.Time) (*domain.LeaveRequest, error)
}

// LeaveRepositoryFacade combines all leave-related repository interfaces.
type LeaveRepositoryFacade interface {
	LeaveReader
	LeaveWriter
}

// LeaveRepositoryWithTx extends LeaveRepositoryFacade with transaction capabilities.
type LeaveRepositoryWithTx interface {
	LeaveRepositoryFacade
	TransactionManager
}
