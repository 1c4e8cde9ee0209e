package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/core/services"
	"github.com/nairabooks/ledger_backend/internal/dto"
)

// --- Mock AccountWriterSvc ---
type MockAccountWriterSvc struct {
	mock.Mock
}

var _ portssvc.AccountWriterSvc = (*MockAccountWriterSvc)(nil)

func (m *MockAccountWriterSvc) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountWriterSvc) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountWriterSvc) DeleteAccount(ctx context.Context, tenantID string, accountID string, requestingUserID string) error {
	args := m.Called(ctx, tenantID, accountID, requestingUserID)
	return args.Error(0)
}

func (m *MockAccountWriterSvc) SeedDefaultAccounts(ctx context.Context, tenantID string, branchID string, creatorUserID string) error {
	args := m.Called(ctx, tenantID, branchID, creatorUserID)
	return args.Error(0)
}

// --- Test Suite ---
type TenantServiceTestSuite struct {
	suite.Suite
	mockTenantRepo *MockTenantRepository
	mockAccountSvc *MockAccountWriterSvc
	service        portssvc.TenantSvcFacade
	userID         string
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.mockAccountSvc = new(MockAccountWriterSvc)
	suite.service = services.NewTenantService(suite.mockTenantRepo, suite.mockAccountSvc)
	suite.userID = uuid.NewString()
}

func (suite *TenantServiceTestSuite) TestCreateTenant_ProvisionsBranchAndChart() {
	var tenantID, branchID string

	suite.mockTenantRepo.On("SaveTenant", mock.MatchedBy(func(_ context.Context) bool { return true }), mock.MatchedBy(func(t domain.Tenant) bool {
		tenantID = t.TenantID
		return t.Name == "Naira Books Ltd" && t.IsActive
	})).Return(nil).Once()
	suite.mockTenantRepo.On("SaveBranch", mock.Anything, mock.MatchedBy(func(b domain.Branch) bool {
		branchID = b.BranchID
		return b.IsHeadOffice && b.Name == "Head Office"
	})).Return(nil).Once()
	suite.mockAccountSvc.On("SeedDefaultAccounts", mock.Anything, mock.Anything, mock.Anything, suite.userID).
		Return(nil).Once()

	tenant, err := suite.service.CreateTenant(context.Background(), dto.CreateTenantRequest{Name: "Naira Books Ltd"}, suite.userID)

	suite.NoError(err)
	suite.Require().NotNil(tenant)
	suite.Equal(tenantID, tenant.TenantID)
	suite.NotEmpty(branchID)
	suite.mockTenantRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestCreateTenant_StatutoryDefaults() {
	suite.mockTenantRepo.On("SaveTenant", mock.Anything, mock.MatchedBy(func(t domain.Tenant) bool {
		return t.VATRate.Equal(decimal.RequireFromString("0.075")) &&
			t.PensionEmployeeRate.Equal(decimal.RequireFromString("0.08")) &&
			t.PensionEmployerRate.Equal(decimal.RequireFromString("0.10"))
	})).Return(nil).Once()
	suite.mockTenantRepo.On("SaveBranch", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAccountSvc.On("SeedDefaultAccounts", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateTenant(context.Background(), dto.CreateTenantRequest{Name: "Defaults Ltd"}, suite.userID)
	suite.NoError(err)
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) TestCreateBranch_InactiveTenantRejected() {
	tenantID := uuid.NewString()
	suite.mockTenantRepo.On("FindTenantByID", mock.Anything, tenantID).
		Return(&domain.Tenant{TenantID: tenantID, IsActive: false}, nil).Once()

	_, err := suite.service.CreateBranch(context.Background(), tenantID, dto.CreateBranchRequest{Name: "Lagos"}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "SaveBranch", mock.Anything, mock.Anything)
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
