package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riyazsharif/employee-leave-managment-system/internal/apperrors"
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	portssvc "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/services"
	"github.com/riyazsharif/employee-leave-managment-system/internal/dto"
	"github.com/riyazsharif/employee-leave-managment-system/internal/middleware"
)

// LeaveHandler handles leave request and calendar endpoints.
type LeaveHandler struct {
	leaveService    portssvc.LeaveSvcFacade
	employeeService portssvc.EmployeeSvcFacade
}

// NewLeaveHandler creates a new LeaveHandler.
func NewLeaveHandler(ls portssvc.LeaveSvcFacade, es portssvc.EmployeeSvcFacade) *LeaveHandler {
	return &LeaveHandler{leaveService: ls, employeeService: es}
}

// RegisterLeaveRoutes sets up the authenticated leave routes. The role-scoped
// routes get a route guard on top of the service-layer check: submission is an
// EMPLOYEE action, listing all requests and deciding are MANAGER actions.
func RegisterLeaveRoutes(rg *gin.RouterGroup, ls portssvc.LeaveSvcFacade, es portssvc.EmployeeSvcFacade) {
	h := NewLeaveHandler(ls, es)

	leaves := rg.Group("/leaves")
	{
		leaves.GET("/me", h.GetMyLeaves)
		leaves.POST("", middleware.RequireRole(domain.RoleEmployee), h.SubmitLeave)
		leaves.GET("/calendar", h.GetCalendar)
		leaves.GET("/all", middleware.RequireRole(domain.RoleManager), h.GetAllLeaves)
		leaves.POST("/:requestID/decision", middleware.RequireRole(domain.RoleManager), h.DecideLeave)
	}
}

func principalOrAbort(c *gin.Context) (domain.Principal, bool) {
	principal, ok := middleware.GetPrincipalFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return principal, ok
}

// GetMyLeaves godoc
// @Summary Own profile and requests
// @Description Returns the authenticated employee with current balances and
// @Description all of their leave requests, newest start date first.
// @Tags leaves
// @Produce json
// @Success 200 {object} dto.MyLeavesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leaves/me [get]
func (h *LeaveHandler) GetMyLeaves(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), principal.EmployeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Valid token for an account that no longer exists.
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Employee not found"})
			return
		}
		logger.Error("Failed to load employee for /leaves/me", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load profile"})
		return
	}

	leaves, err := h.leaveService.ListOwnLeaves(c.Request.Context(), principal)
	if err != nil {
		logger.Error("Failed to list own leaves", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list leave requests"})
		return
	}

	c.JSON(http.StatusOK, dto.MyLeavesResponse{
		Employee: dto.ToEmployeeResponse(employee),
		Leaves:   dto.ToLeaveResponseSlice(leaves),
	})
}

// SubmitLeave godoc
// @Summary Submit a leave request
// @Description Creates a PENDING leave request owned by the authenticated
// @Description employee. Balances are not checked until approval.
// @Tags leaves
// @Accept json
// @Produce json
// @Param leave body dto.SubmitLeaveRequest true "Leave Request"
// @Success 201 {object} dto.LeaveResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leaves [post]
func (h *LeaveHandler) SubmitLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req dto.SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	request, err := h.leaveService.SubmitLeave(c.Request.Context(), principal, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Employee role required"})
		default:
			logger.Error("Failed to submit leave request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to submit leave request"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLeaveResponse(*request))
}

// GetAllLeaves godoc
// @Summary All leave requests
// @Description Returns every leave request with owner names, newest start
// @Description date first. MANAGER only.
// @Tags leaves
// @Produce json
// @Success 200 {array} dto.LeaveResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leaves/all [get]
func (h *LeaveHandler) GetAllLeaves(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	leaves, err := h.leaveService.ListAllLeaves(c.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Manager role required"})
			return
		}
		logger.Error("Failed to list all leaves", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list leave requests"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveResponseSlice(leaves))
}

// DecideLeave godoc
// @Summary Decide a pending leave request
// @Description Approves or rejects one PENDING request. Approval atomically
// @Description deducts the inclusive day count from the matching balance;
// @Description every failure leaves the request PENDING and balances
// @Description untouched.
// @Tags leaves
// @Accept json
// @Produce json
// @Param requestID path string true "Leave Request ID"
// @Param decision body dto.DecisionRequest true "Decision"
// @Success 200 {object} dto.LeaveResponse
// @Failure 400 {object} ErrorResponse "Validation or insufficient balance"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already decided or lock contention"
// @Failure 500 {object} ErrorResponse
// @Router /leaves/{requestID}/decision [post]
func (h *LeaveHandler) DecideLeave(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	decided, err := h.leaveService.DecideLeave(c.Request.Context(), principal, requestID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Manager role required"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Leave request not found"})
		case errors.Is(err, apperrors.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Leave request already decided"})
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient leave balance for approval"})
		case errors.Is(err, apperrors.ErrLockTimeout):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Request is being decided, try again"})
		default:
			logger.Error("Failed to decide leave request",
				slog.String("error", err.Error()),
				slog.String("request_id", requestID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record decision"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaveResponse(*decided))
}

// GetCalendar godoc
// @Summary Approved leave calendar
// @Description Returns approved leaves (owner, category, dates) for every
// @Description employee, earliest start date first.
// @Tags leaves
// @Produce json
// @Success 200 {array} dto.CalendarEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /leaves/calendar [get]
func (h *LeaveHandler) GetCalendar(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	leaves, err := h.leaveService.ListApprovedCalendar(c.Request.Context(), principal)
	if err != nil {
		logger.Error("Failed to list approved leaves", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load calendar"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCalendarResponse(leaves))
}
