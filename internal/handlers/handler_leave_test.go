package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/riyazsharif/employee-leave-managment-system/internal/apperrors"
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	portssvc "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/services"
	"github.com/riyazsharif/employee-leave-managment-system/internal/dto"
	"github.com/riyazsharif/employee-leave-managment-system/internal/handlers"
	"github.com/riyazsharif/employee-leave-managment-system/internal/middleware"
	"github.com/riyazsharif/employee-leave-managment-system/internal/utils"
)

// --- Mock LeaveService ---
type MockLeaveService struct {
	mock.Mock
}

func (m *MockLeaveService) ListOwnLeaves(ctx context.Context, principal domain.Principal) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveService) ListAllLeaves(ctx context.Context, principal domain.Principal) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveService) ListApprovedCalendar(ctx context.Context, principal domain.Principal) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveService) SubmitLeave(ctx context.Context, principal domain.Principal, req dto.SubmitLeaveRequest) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveService) DecideLeave(ctx context.Context, principal domain.Principal, requestID string, req dto.DecisionRequest) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, principal, requestID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveRequest), args.Error(1)
}

var _ portssvc.LeaveSvcFacade = (*MockLeaveService)(nil)

// --- Mock EmployeeService ---
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) RegisterEmployee(ctx context.Context, req dto.RegisterRequest) (*domain.Employee, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) AuthenticateEmployee(ctx context.Context, email, password string) (*domain.Employee, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

var _ portssvc.EmployeeSvcFacade = (*MockEmployeeService)(nil)

// --- Test Suite ---
type LeaveHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockLeaveService    *MockLeaveService
	mockEmployeeService *MockEmployeeService
	jwtSecret           string
}

func (suite *LeaveHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLeaveService = new(MockLeaveService)
	suite.mockEmployeeService = new(MockEmployeeService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLeaveRoutes(v1, suite.mockLeaveService, suite.mockEmployeeService)
}

// generateTestToken signs a real access token for the given identity.
func (suite *LeaveHandlerTestSuite) generateTestToken(employeeID string, role domain.Role) string {
	emp := &domain.Employee{EmployeeID: employeeID, Email: "test@example.com", Role: role}
	token, err := utils.GenerateJWT(emp, suite.jwtSecret, time.Hour, "elms-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *LeaveHandlerTestSuite) doRequest(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func principalMatcher(employeeID string, role domain.Role) any {
	return mock.MatchedBy(func(p domain.Principal) bool {
		return p.EmployeeID == employeeID && p.Role == role
	})
}

// --- Test Cases ---

func (suite *LeaveHandlerTestSuite) TestGetMyLeaves_Success() {
	employeeID := uuid.NewString()
	employee := &domain.Employee{
		EmployeeID: employeeID,
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Role:       domain.RoleEmployee,
		Balances:   domain.DefaultLeaveBalances(),
	}
	leaves := []domain.LeaveRequest{
		{
			RequestID:  uuid.NewString(),
			EmployeeID: employeeID,
			LeaveType:  domain.LeaveVacation,
			StartDate:  time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC),
			Status:     domain.LeavePending,
		},
	}

	suite.mockEmployeeService.On("GetEmployeeByID", mock.Anything, employeeID).Return(employee, nil).Once()
	suite.mockLeaveService.On("ListOwnLeaves", mock.Anything, principalMatcher(employeeID, domain.RoleEmployee)).
		Return(leaves, nil).Once()

	token := suite.generateTestToken(employeeID, domain.RoleEmployee)
	w := suite.doRequest(http.MethodGet, "/api/v1/leaves/me", token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.MyLeavesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(employeeID, body.Employee.EmployeeID)
	suite.Equal(15, body.Employee.VacationBalance)
	suite.Require().Len(body.Leaves, 1)
	suite.Equal("2025-07-07", body.Leaves[0].StartDate)
	suite.Equal("PENDING", body.Leaves[0].Status)

	suite.mockLeaveService.AssertExpectations(suite.T())
	suite.mockEmployeeService.AssertExpectations(suite.T())
}

func (suite *LeaveHandlerTestSuite) TestGetMyLeaves_NoToken() {
	w := suite.doRequest(http.MethodGet, "/api/v1/leaves/me", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLeaveService.AssertNotCalled(suite.T(), "ListOwnLeaves")
}

func (suite *LeaveHandlerTestSuite) TestSubmitLeave_Success() {
	employeeID := uuid.NewString()
	payload := dto.SubmitLeaveRequest{
		LeaveType: "CASUAL",
		StartDate: "2025-09-01",
		EndDate:   "2025-09-03",
		Reason:    "Family function",
	}
	created := &domain.LeaveRequest{
		RequestID:  uuid.NewString(),
		EmployeeID: employeeID,
		LeaveType:  domain.LeaveCasual,
		StartDate:  time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
		Reason:     payload.Reason,
		Status:     domain.LeavePending,
	}

	suite.mockLeaveService.On("SubmitLeave", mock.Anything, principalMatcher(employeeID, domain.RoleEmployee), payload).
		Return(created, nil).Once()

	token := suite.generateTestToken(employeeID, domain.RoleEmployee)
	w := suite.doRequest(http.MethodPost, "/api/v1/leaves", token, payload)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.LeaveResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(created.RequestID, body.RequestID)
	suite.Equal("PENDING", body.Status)
	suite.mockLeaveService.AssertExpectations(suite.T())
}

func (suite *LeaveHandlerTestSuite) TestSubmitLeave_ManagerForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleManager)
	payload := dto.SubmitLeaveRequest{
		LeaveType: "CASUAL",
		StartDate: "2025-09-01",
		EndDate:   "2025-09-03",
		Reason:    "Family function",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/leaves", token, payload)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLeaveService.AssertNotCalled(suite.T(), "SubmitLeave")
}

func (suite *LeaveHandlerTestSuite) TestSubmitLeave_BadDateRejectedByBinding() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleEmployee)
	payload := map[string]string{
		"leaveType": "CASUAL",
		"startDate": "01-09-2025",
		"endDate":   "2025-09-03",
		"reason":    "Family function",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/leaves", token, payload)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLeaveService.AssertNotCalled(suite.T(), "SubmitLeave")
}

func (suite *LeaveHandlerTestSuite) TestGetAllLeaves_EmployeeForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleEmployee)

	w := suite.doRequest(http.MethodGet, "/api/v1/leaves/all", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLeaveService.AssertNotCalled(suite.T(), "ListAllLeaves")
}

func (suite *LeaveHandlerTestSuite) TestGetAllLeaves_ManagerSucceeds() {
	managerID := uuid.NewString()
	leaves := []domain.LeaveRequest{
		{
			RequestID:    uuid.NewString(),
			EmployeeID:   uuid.NewString(),
			EmployeeName: "Asha Rao",
			LeaveType:    domain.LeaveSick,
			StartDate:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
			Status:       domain.LeaveApproved,
		},
	}

	suite.mockLeaveService.On("ListAllLeaves", mock.Anything, principalMatcher(managerID, domain.RoleManager)).
		Return(leaves, nil).Once()

	token := suite.generateTestToken(managerID, domain.RoleManager)
	w := suite.doRequest(http.MethodGet, "/api/v1/leaves/all", token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.LeaveResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal("Asha Rao", body[0].EmployeeName)
	suite.mockLeaveService.AssertExpectations(suite.T())
}

func (suite *LeaveHandlerTestSuite) TestDecideLeave_Success() {
	managerID := uuid.NewString()
	requestID := uuid.NewString()
	comment := "Approved, enjoy"
	payload := dto.DecisionRequest{Status: "APPROVED", Comment: &comment}
	decided := &domain.LeaveRequest{
		RequestID:      requestID,
		EmployeeID:     uuid.NewString(),
		LeaveType:      domain.LeaveVacation,
		StartDate:      time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC),
		Status:         domain.LeaveApproved,
		ManagerComment: &comment,
	}

	suite.mockLeaveService.On("DecideLeave", mock.Anything, principalMatcher(managerID, domain.RoleManager), requestID, payload).
		Return(decided, nil).Once()

	token := suite.generateTestToken(managerID, domain.RoleManager)
	w := suite.doRequest(http.MethodPost, "/api/v1/leaves/"+requestID+"/decision", token, payload)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.LeaveResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("APPROVED", body.Status)
	suite.Require().NotNil(body.ManagerComment)
	suite.Equal(comment, *body.ManagerComment)
	suite.mockLeaveService.AssertExpectations(suite.T())
}

func (suite *LeaveHandlerTestSuite) TestDecideLeave_EmployeeForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleEmployee)
	payload := dto.DecisionRequest{Status: "APPROVED"}

	w := suite.doRequest(http.MethodPost, "/api/v1/leaves/"+uuid.NewString()+"/decision", token, payload)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLeaveService.AssertNotCalled(suite.T(), "DecideLeave")
}

func (suite *LeaveHandlerTestSuite) TestDecideLeave_ErrorMapping() {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"already decided", apperrors.ErrAlreadyDecided, http.StatusConflict},
		{"insufficient balance", apperrors.ErrInsufficientBalance, http.StatusBadRequest},
		{"lock contention", apperrors.ErrLockTimeout, http.StatusConflict},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			managerID := uuid.NewString()
			requestID := uuid.NewString()
			payload := dto.DecisionRequest{Status: "APPROVED"}

			suite.mockLeaveService.On("DecideLeave", mock.Anything, principalMatcher(managerID, domain.RoleManager), requestID, payload).
				Return(nil, tt.serviceErr).Once()

			token := suite.generateTestToken(managerID, domain.RoleManager)
			w := suite.doRequest(http.MethodPost, "/api/v1/leaves/"+requestID+"/decision", token, payload)

			suite.Equal(tt.wantStatus, w.Code)
			suite.mockLeaveService.AssertExpectations(suite.T())
		})
	}
}

func (suite *LeaveHandlerTestSuite) TestDecideLeave_BadStatusRejectedByBinding() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleManager)
	payload := map[string]string{"status": "MAYBE"}

	w := suite.doRequest(http.MethodPost, "/api/v1/leaves/"+uuid.NewString()+"/decision", token, payload)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLeaveService.AssertNotCalled(suite.T(), "DecideLeave")
}

func (suite *LeaveHandlerTestSuite) TestGetCalendar_Success() {
	employeeID := uuid.NewString()
	leaves := []domain.LeaveRequest{
		{
			RequestID:    uuid.NewString(),
			EmployeeID:   uuid.NewString(),
			EmployeeName: "Asha Rao",
			LeaveType:    domain.LeaveVacation,
			StartDate:    time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC),
			Status:       domain.LeaveApproved,
		},
		{
			RequestID:    uuid.NewString(),
			EmployeeID:   uuid.NewString(),
			EmployeeName: "Dana Mehta",
			LeaveType:    domain.LeaveCasual,
			StartDate:    time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Status:       domain.LeaveApproved,
		},
	}

	suite.mockLeaveService.On("ListApprovedCalendar", mock.Anything, principalMatcher(employeeID, domain.RoleEmployee)).
		Return(leaves, nil).Once()

	token := suite.generateTestToken(employeeID, domain.RoleEmployee)
	w := suite.doRequest(http.MethodGet, "/api/v1/leaves/calendar", token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.CalendarEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 2)
	suite.Equal("Asha Rao", body[0].EmployeeName)
	suite.Equal("2025-07-07", body[0].StartDate)
	suite.Equal("Dana Mehta", body[1].EmployeeName)
	suite.mockLeaveService.AssertExpectations(suite.T())
}

func TestLeaveHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LeaveHandlerTestSuite))
}
