package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/dto"
	"github.com/nairabooks/ledger_backend/internal/middleware"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountsGroupedByType(ctx context.Context, tenantID string, branchID *string) (map[domain.AccountType][]dto.AccountWithBalance, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.AccountType][]dto.AccountWithBalance), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, tenantID string, accountID string, requestingUserID string) error {
	args := m.Called(ctx, tenantID, accountID, requestingUserID)
	return args.Error(0)
}
func (m *MockAccountService) SeedDefaultAccounts(ctx context.Context, tenantID string, branchID string, creatorUserID string) error {
	args := m.Called(ctx, tenantID, branchID, creatorUserID)
	return args.Error(0)
}
func (m *MockAccountService) GetAccountBalance(ctx context.Context, tenantID string, accountID string, params dto.BalanceParams) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, params)
	if args.Get(0) == nil {
		return decimal.Decimal{}, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockAccountService) GetAccountBalanceForPeriod(ctx context.Context, tenantID string, accountID string, params dto.PeriodBalanceParams) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, accountID, params)
	if args.Get(0) == nil {
		return decimal.Decimal{}, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
	tenantID           string
	userID             string
}

// generateTestToken creates a dummy JWT carrying the suite's tenant scope.
func (suite *AccountHandlerTestSuite) generateTestToken() string {
	claims := middleware.TenantClaims{
		TenantID: suite.tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ledger-backend-test",
			Subject:   suite.userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)

	v1 := suite.router.Group("/api/v1")
	registerAccountRoutes(v1, suite.mockAccountService)
}

// serve signs a request with the suite token and runs it through the router.
func (suite *AccountHandlerTestSuite) serve(method, url string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	branchID := uuid.NewString()
	reqBody := dto.CreateAccountRequest{
		BranchID:    branchID,
		Code:        "1010",
		Name:        "Cash",
		AccountType: domain.Asset,
	}
	expected := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		BranchID:    branchID,
		Code:        "1010",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		suite.tenantID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Code == "1010" && r.AccountType == domain.Asset
		}),
		suite.userID,
	).Return(expected, nil).Once()

	body, _ := json.Marshal(reqBody)
	w := suite.serve(http.MethodPost, "/api/v1/accounts", body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.AccountID, resp.AccountID)
	suite.Equal("1010", resp.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	reqBody := dto.CreateAccountRequest{
		BranchID:    uuid.NewString(),
		Code:        "1010",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything, suite.tenantID, mock.Anything, suite.userID,
	).Return(nil, fmt.Errorf("code 1010 taken: %w", apperrors.ErrDuplicateCode)).Once()

	body, _ := json.Marshal(reqBody)
	w := suite.serve(http.MethodPost, "/api/v1/accounts", body)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BadCodeRejectedByBinding() {
	// Non-numeric code fails the accountcode binding tag before the service runs.
	body := []byte(`{"branchID":"` + uuid.NewString() + `","code":"CASH","name":"Cash","accountType":"ASSET"}`)
	w := suite.serve(http.MethodPost, "/api/v1/accounts", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID",
		mock.Anything, suite.tenantID, accountID,
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_WithAsOf() {
	accountID := uuid.NewString()
	expected := decimal.RequireFromString("1250.50")

	suite.mockAccountService.On("GetAccountBalance",
		mock.Anything,
		suite.tenantID,
		accountID,
		mock.MatchedBy(func(p dto.BalanceParams) bool {
			return p.AsOf != nil && p.AsOf.Format("2006-01-02") == "2024-06-30"
		}),
	).Return(expected, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/accounts/"+accountID+"/balance?asOf=2024-06-30", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AccountBalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.AccountID)
	suite.True(expected.Equal(resp.Balance))
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts")
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
