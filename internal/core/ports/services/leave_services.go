package services

import (
	"context"

	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	"github.com/riyazsharif/employee-leave-managment-system/internal/dto"
)

// LeaveReaderSvc defines the read-only query surface. None of these mutate
// state.
type LeaveReaderSvc interface {
	// ListOwnLeaves retrieves the principal's own requests, newest start date
	// first.
	ListOwnLeaves(ctx context.Context, principal domain.Principal) ([]domain.LeaveRequest, error)

	// ListAllLeaves retrieves every request with owner names. MANAGER only.
	ListAllLeaves(ctx context.Context, principal domain.Principal) ([]domain.LeaveRequest, error)

	// ListApprovedCalendar retrieves APPROVED requests for the shared
	// calendar, earliest start date first. Any authenticated principal.
	ListApprovedCalendar(ctx context.Context, principal domain.Principal) ([]domain.LeaveRequest, error)
}

// LeaveWriterSvc defines the mutating leave operations.
type LeaveWriterSvc interface {
	// SubmitLeave validates and persists a new PENDING request owned by the
	// principal. Balances are not checked at submission.
	SubmitLeave(ctx context.Context, principal domain.Principal, req dto.SubmitLeaveRequest) (*domain.LeaveRequest, error)

	// DecideLeave applies a manager's decision to one pending request as a
	// single atomic operation.
	DecideLeave(ctx context.Context, principal domain.Principal, requestID string, req dto.DecisionRequest) (*domain.LeaveRequest, error)
}

// LeaveSvcFacade combines all leave-related service interfaces.
type LeaveSvcFacade interface {
	LeaveReaderSvc
	LeaveWriterSvc
}
