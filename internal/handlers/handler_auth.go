package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/riyazsharif/employee-leave-managment-system/internal/apperrors"
	portssvc "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/services"
	"github.com/riyazsharif/employee-leave-managment-system/internal/dto"
	"github.com/riyazsharif/employee-leave-managment-system/internal/middleware"
	"github.com/riyazsharif/employee-leave-managment-system/internal/utils"
	"github.com/riyazsharif/employee-leave-managment-system/pkg/config"
)

// ErrorResponse is the generic error response structure for all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	employeeService portssvc.EmployeeSvcFacade
	jwtSecret       string
	jwtDuration     time.Duration
	jwtIssuer       string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(es portssvc.EmployeeSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		employeeService: es,
		jwtSecret:       cfg.JWTSecret,
		jwtDuration:     cfg.JWTExpiryDuration,
		jwtIssuer:       cfg.JWTIssuer,
	}
}

// RegisterAuthRoutes sets up the public authentication routes with a per-IP
// rate limit on login.
func RegisterAuthRoutes(r *gin.Engine, cfg *config.Config, es portssvc.EmployeeSvcFacade) {
	h := NewAuthHandler(es, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", h.Register)
	}
}

// Register godoc
// @Summary Register an employee
// @Description Creates a new employee account with default leave balances. An
// @Description existing email with a different role is upgraded only when the
// @Description current password is presented.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration Info"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	employee, err := h.employeeService.RegisterEmployee(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email is already registered"})
		default:
			logger.Error("Failed to register employee", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// Login godoc
// @Summary Employee login
// @Description Authenticates an employee and returns a signed token valid for
// @Description the configured duration (8h by default), plus the employee
// @Description profile with current balances.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	employee, err := h.employeeService.AuthenticateEmployee(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		logger.Error("Failed to authenticate employee", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Login failed"})
		return
	}

	token, err := utils.GenerateJWT(employee, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    token,
		Employee: dto.ToEmployeeResponse(employee),
	})
}
