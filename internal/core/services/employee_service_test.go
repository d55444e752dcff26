package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/riyazsharif/employee-leave-managment-system/internal/apperrors"
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
	portssvc "github.com/riyazsharif/employee-leave-managment-system/internal/core/ports/services"
	"github.com/riyazsharif/employee-leave-managment-system/internal/core/services"
	"github.com/riyazsharif/employee-leave-managment-system/internal/dto"
	"github.com/riyazsharif/employee-leave-managment-system/internal/utils"
)

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployeeRole(ctx context.Context, employeeID string, name string, role domain.Role, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, employeeID, name, role, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindEmployeeForUpdate(ctx context.Context, tx pgx.Tx, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, tx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) DeductBalanceInTx(ctx context.Context, tx pgx.Tx, employeeID string, leaveType domain.LeaveType, days int, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, employeeID, leaveType, days, updatedBy, now)
	return args.Error(0)
}

// --- Test Suite ---
type EmployeeServiceTestSuite struct {
	suite.Suite
	mockEmployeeRepo *MockEmployeeRepository
	service          portssvc.EmployeeSvcFacade
}

func (suite *EmployeeServiceTestSuite) SetupTest() {
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.service = services.NewEmployeeService(suite.mockEmployeeRepo)
}

func (suite *EmployeeServiceTestSuite) hashed(password string) string {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return hash
}

// --- RegisterEmployee Tests ---

func (suite *EmployeeServiceTestSuite) TestRegisterEmployee_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Asha Rao", Email: "asha@example.com", Password: "correct-horse"}

	suite.mockEmployeeRepo.On("FindEmployeeByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEmployeeRepo.On("SaveEmployee", ctx, mock.MatchedBy(func(e domain.Employee) bool {
		return e.Email == req.Email &&
			e.Role == domain.RoleEmployee &&
			e.Balances == domain.DefaultLeaveBalances() &&
			e.PasswordHash != req.Password
	})).Return(nil).Once()

	created, err := suite.service.RegisterEmployee(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.RoleEmployee, created.Role)
	suite.Equal(15, created.Balances.Vacation)
	suite.Equal(10, created.Balances.Sick)
	suite.Equal(7, created.Balances.Casual)
	suite.NotEmpty(created.EmployeeID)
	suite.Equal(created.EmployeeID, created.CreatedBy)
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestRegisterEmployee_ExplicitManagerRole() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Dana Mehta", Email: "dana@example.com", Password: "secret-password", Role: "MANAGER"}

	suite.mockEmployeeRepo.On("FindEmployeeByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEmployeeRepo.On("SaveEmployee", ctx, mock.MatchedBy(func(e domain.Employee) bool {
		return e.Role == domain.RoleManager
	})).Return(nil).Once()

	created, err := suite.service.RegisterEmployee(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleManager, created.Role)
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestRegisterEmployee_DuplicateSameRole() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Asha Rao", Email: "asha@example.com", Password: "whatever"}
	existing := &domain.Employee{EmployeeID: uuid.NewString(), Email: req.Email, Role: domain.RoleEmployee}

	suite.mockEmployeeRepo.On("FindEmployeeByEmail", ctx, req.Email).Return(existing, nil).Once()

	created, err := suite.service.RegisterEmployee(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(created)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "SaveEmployee")
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "UpdateEmployeeRole")
}

func (suite *EmployeeServiceTestSuite) TestRegisterEmployee_RoleChangeWrongPassword() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Asha Rao", Email: "asha@example.com", Password: "not-the-password", Role: "MANAGER"}
	existing := &domain.Employee{
		EmployeeID:   uuid.NewString(),
		Email:        req.Email,
		Role:         domain.RoleEmployee,
		PasswordHash: suite.hashed("the-real-password"),
	}

	suite.mockEmployeeRepo.On("FindEmployeeByEmail", ctx, req.Email).Return(existing, nil).Once()

	created, err := suite.service.RegisterEmployee(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(created)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "UpdateEmployeeRole")
}

func (suite *EmployeeServiceTestSuite) TestRegisterEmployee_RoleChangeWithPassword() {
	ctx := context.Background()
	password := "the-real-password"
	hash := suite.hashed(password)
	req := dto.RegisterRequest{Name: "Asha Rao", Email: "asha@example.com", Password: password, Role: "MANAGER"}
	existing := &domain.Employee{
		EmployeeID:   uuid.NewString(),
		Name:         "Asha R",
		Email:        req.Email,
		Role:         domain.RoleEmployee,
		PasswordHash: hash,
		Balances:     domain.LeaveBalances{Vacation: 9, Sick: 10, Casual: 7},
	}

	suite.mockEmployeeRepo.On("FindEmployeeByEmail", ctx, req.Email).Return(existing, nil).Once()
	suite.mockEmployeeRepo.On("UpdateEmployeeRole", ctx, existing.EmployeeID, req.Name, domain.RoleManager, existing.EmployeeID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	updated, err := suite.service.RegisterEmployee(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.RoleManager, updated.Role)
	suite.Equal(req.Name, updated.Name)
	// Credential and accumulated balances survive the role change.
	suite.Equal(hash, updated.PasswordHash)
	suite.Equal(9, updated.Balances.Vacation)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "SaveEmployee")
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestRegisterEmployee_InvalidRole() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Asha Rao", Email: "asha@example.com", Password: "secret-password", Role: "ADMIN"}

	created, err := suite.service.RegisterEmployee(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockEmployeeRepo.AssertNotCalled(suite.T(), "FindEmployeeByEmail")
}

// --- AuthenticateEmployee Tests ---

func (suite *EmployeeServiceTestSuite) TestAuthenticateEmployee_Success() {
	ctx := context.Background()
	password := "correct-horse"
	employee := &domain.Employee{
		EmployeeID:   uuid.NewString(),
		Email:        "asha@example.com",
		PasswordHash: suite.hashed(password),
	}

	suite.mockEmployeeRepo.On("FindEmployeeByEmail", ctx, employee.Email).Return(employee, nil).Once()

	authed, err := suite.service.AuthenticateEmployee(ctx, employee.Email, password)

	suite.Require().NoError(err)
	suite.Equal(employee, authed)
	suite.mockEmployeeRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestAuthenticateEmployee_UnknownEmail() {
	ctx := context.Background()

	suite.mockEmployeeRepo.On("FindEmployeeByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	authed, err := suite.service.AuthenticateEmployee(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(authed)
}

func (suite *EmployeeServiceTestSuite) TestAuthenticateEmployee_WrongPassword() {
	ctx := context.Background()
	employee := &domain.Employee{
		EmployeeID:   uuid.NewString(),
		Email:        "asha@example.com",
		PasswordHash: suite.hashed("correct-horse"),
	}

	suite.mockEmployeeRepo.On("FindEmployeeByEmail", ctx, employee.Email).Return(employee, nil).Once()

	authed, err := suite.service.AuthenticateEmployee(ctx, employee.Email, "battery-staple")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(authed)
}

// --- GetEmployeeByID Tests ---

func (suite *EmployeeServiceTestSuite) TestGetEmployeeByID_Success() {
	ctx := context.Background()
	employee := &domain.Employee{EmployeeID: uuid.NewString(), Name: "Found"}

	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, employee.EmployeeID).Return(employee, nil).Once()

	found, err := suite.service.GetEmployeeByID(ctx, employee.EmployeeID)

	suite.Require().NoError(err)
	suite.Equal(employee, found)
}

func (suite *EmployeeServiceTestSuite) TestGetEmployeeByID_NotFound() {
	ctx := context.Background()
	employeeID := uuid.NewString()

	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, employeeID).Return(nil, apperrors.ErrNotFound).Once()

	found, err := suite.service.GetEmployeeByID(ctx, employeeID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(found)
}

func TestEmployeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeServiceTestSuite))
}
