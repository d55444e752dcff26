package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/riyazsharif/employee-leave-managment-system/internal/apperrors"
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	portsrepo "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/repositories"
	portssvc "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/services"
	"github.com/riyazsharif/employee-leave-managment-system/internal/dto"
	"github.com/riyazsharif/employee-leave-managment-system/internal/middleware"
)

const leaveDateLayout = "2006-01-02"

// leaveService provides the leave request store, the query surface and the
// decision workflow.
type leaveService struct {
	leaveRepo portsrepo.LeaveRepositoryFacade
}

// NewLeaveService creates a new LeaveService.
func NewLeaveService(leaveRepo portsrepo.LeaveRepositoryFacade) portssvc.LeaveSvcFacade {
	return &leaveService{leaveRepo: leaveRepo}
}

// Ensure leaveService implements the portssvc.LeaveSvcFacade interface
var _ portssvc.LeaveSvcFacade = (*leaveService)(nil)

// SubmitLeave validates and persists a new PENDING request. Submission is an
// EMPLOYEE action. Balances are checked at approval time only, so overlapping
// or over-budget submissions are allowed to queue up.
func (s *leaveService) SubmitLeave(ctx context.Context, principal domain.Principal, req dto.SubmitLeaveRequest) (*domain.LeaveRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if principal.Role != domain.RoleEmployee {
		return nil, fmt.Errorf("submitting requests requires EMPLOYEE: %w", apperrors.ErrForbidden)
	}

	leaveType := domain.LeaveType(req.LeaveType)
	if !leaveType.IsValid() {
		return nil, fmt.Errorf("%w: unknown leave type %q", apperrors.ErrValidation, req.LeaveType)
	}

	startDate, err := time.ParseInLocation(leaveDateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, req.StartDate)
	}
	endDate, err := time.ParseInLocation(leaveDateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, req.EndDate)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reason is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	request := domain.LeaveRequest{
		RequestID:  uuid.NewString(),
		EmployeeID: principal.EmployeeID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     domain.LeavePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.EmployeeID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.EmployeeID,
		},
	}

	if err := s.leaveRepo.SaveLeaveRequest(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Leave request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("leave_type", string(leaveType)),
		slog.Int("days", request.DayCount()))
	return &request, nil
}

func (s *leaveService) ListOwnLeaves(ctx context.Context, principal domain.Principal) ([]domain.LeaveRequest, error) {
	return s.leaveRepo.ListLeavesByEmployee(ctx, principal.EmployeeID)
}

func (s *leaveService) ListAllLeaves(ctx context.Context, principal domain.Principal) ([]domain.LeaveRequest, error) {
	if !principal.IsManager() {
		return nil, fmt.Errorf("listing all requests requires MANAGER: %w", apperrors.ErrForbidden)
	}
	return s.leaveRepo.ListAllLeaves(ctx)
}

func (s *leaveService) ListApprovedCalendar(ctx context.Context, principal domain.Principal) ([]domain.LeaveRequest, error) {
	return s.leaveRepo.ListApprovedLeaves(ctx)
}

// DecideLeave applies a manager's decision to one pending request. The state
// transition and the balance deduction happen in a single repository
// transaction; every failure leaves the request PENDING and balances
// untouched. The service never retries, the caller may once the cause clears.
func (s *leaveService) DecideLeave(ctx context.Context, principal domain.Principal, requestID string, req dto.DecisionRequest) (*domain.LeaveRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !principal.IsManager() {
		return nil, fmt.Errorf("deciding requests requires MANAGER: %w", apperrors.ErrForbidden)
	}

	decision := domain.LeaveStatus(req.Status)
	if !decision.IsDecision() {
		return nil, fmt.Errorf("%w: decision must be APPROVED or REJECTED", apperrors.ErrValidation)
	}

	decided, err := s.leaveRepo.ApplyDecision(ctx, requestID, decision, req.Comment, principal.EmployeeID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	logger.Info("Leave decision recorded",
		slog.String("request_id", requestID),
		slog.String("decision", string(decision)),
		slog.String("decided_by", principal.EmployeeID))
	return decided, nil
}
