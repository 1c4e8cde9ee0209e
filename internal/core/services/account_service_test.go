package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/core/services"
	"github.com/nairabooks/ledger_backend/internal/dto"
)

// --- Mock AccountRepository (reader + writer) ---
type MockAccountRepository struct {
	MockAccountReader
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, updatedBy string) error {
	args := m.Called(ctx, tenantID, accountID, updatedBy)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	args := m.Called(ctx, tenantID, accountID)
	return args.Error(0)
}

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockVoucherRepo *MockVoucherRepository
	service         portssvc.AccountSvcFacade
	tenantID        string
	branchID        string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockVoucherRepo)

	suite.tenantID = uuid.NewString()
	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		BranchID:    suite.branchID,
		Code:        "1150",
		Name:        "Petty Cash",
		AccountType: domain.Asset,
	}

	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.tenantID, "1150").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Code == "1150" && acc.TenantID == suite.tenantID && acc.IsActive && !acc.IsSystemAccount
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(context.Background(), suite.tenantID, req, suite.userID)

	suite.NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("Petty Cash", account.Name)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	existing := &domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "1000"}
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.tenantID, "1000").
		Return(existing, nil).Once()

	req := dto.CreateAccountRequest{BranchID: suite.branchID, Code: "1000", Name: "Cash Again", AccountType: domain.Asset}
	account, err := suite.service.CreateAccount(context.Background(), suite.tenantID, req, suite.userID)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicateCode)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCodeRace() {
	// A concurrent create can slip in between the code check and the insert;
	// the constraint violation still surfaces as a duplicate-code error.
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.tenantID, "1150").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: code 1150 already in use", apperrors.ErrDuplicateCode)).Once()

	req := dto.CreateAccountRequest{BranchID: suite.branchID, Code: "1150", Name: "Petty Cash", AccountType: domain.Asset}
	account, err := suite.service.CreateAccount(context.Background(), suite.tenantID, req, suite.userID)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicateCode)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	parent := &domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "2000", AccountType: domain.Liability}
	suite.mockAccountRepo.On("FindAccountByCode", mock.Anything, suite.tenantID, "1150").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, parent.AccountID).
		Return(parent, nil).Once()

	req := dto.CreateAccountRequest{
		BranchID:        suite.branchID,
		Code:            "1150",
		Name:            "Petty Cash",
		AccountType:     domain.Asset,
		ParentAccountID: &parent.AccountID,
	}
	_, err := suite.service.CreateAccount(context.Background(), suite.tenantID, req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_SystemProtected() {
	account := &domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        suite.tenantID,
		Code:            "2200",
		IsSystemAccount: true,
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, account.AccountID).
		Return(account, nil).Once()

	err := suite.service.DeleteAccount(context.Background(), suite.tenantID, account.AccountID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrProtectedAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_WithHistoryDeactivates() {
	account := &domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "5150"}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("HasLedgerActivity", mock.Anything, suite.tenantID, account.AccountID).
		Return(true, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", mock.Anything, suite.tenantID, account.AccountID, suite.userID).
		Return(nil).Once()

	err := suite.service.DeleteAccount(context.Background(), suite.tenantID, account.AccountID, suite.userID)
	suite.NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_WithoutHistoryDeletes() {
	account := &domain.Account{AccountID: uuid.NewString(), TenantID: suite.tenantID, Code: "5150"}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("HasLedgerActivity", mock.Anything, suite.tenantID, account.AccountID).
		Return(false, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", mock.Anything, suite.tenantID, account.AccountID).
		Return(nil).Once()

	err := suite.service.DeleteAccount(context.Background(), suite.tenantID, account.AccountID, suite.userID)
	suite.NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_CycleRejected() {
	accountID := uuid.NewString()
	childID := uuid.NewString()

	account := &domain.Account{AccountID: accountID, TenantID: suite.tenantID, AccountType: domain.Asset}
	// child's ancestor chain leads back to the account being reparented
	child := &domain.Account{AccountID: childID, TenantID: suite.tenantID, AccountType: domain.Asset, ParentAccountID: &accountID}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, accountID).
		Return(account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, childID).
		Return(child, nil).Once()

	req := dto.UpdateAccountRequest{ParentAccountID: &childID}
	_, err := suite.service.UpdateAccount(context.Background(), suite.tenantID, accountID, req, suite.userID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestSeedDefaultAccounts_FullChart() {
	suite.mockAccountRepo.On("SaveAccounts", mock.Anything, mock.MatchedBy(func(accounts []domain.Account) bool {
		if len(accounts) != 29 {
			return false
		}
		codes := make(map[string]bool, len(accounts))
		for _, acc := range accounts {
			if !acc.IsSystemAccount || acc.TenantID != suite.tenantID {
				return false
			}
			codes[acc.Code] = true
		}
		return codes["1100"] && codes["2200"] && codes["2210"] && codes["3100"] && codes["5100"]
	})).Return(nil).Once()

	err := suite.service.SeedDefaultAccounts(context.Background(), suite.tenantID, suite.branchID, suite.userID)
	suite.NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_AssetSign() {
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		TenantID:       suite.tenantID,
		AccountType:    domain.Asset,
		OpeningBalance: decimal.NewFromInt(100),
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockVoucherRepo.On("GetAccountTotals", mock.Anything, suite.tenantID, account.AccountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(200), nil).Once()

	balance, err := suite.service.GetAccountBalance(context.Background(), suite.tenantID, account.AccountID, dto.BalanceParams{})
	suite.NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(400)), "expected 100+500-200=400, got %s", balance)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_LiabilitySign() {
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		TenantID:       suite.tenantID,
		AccountType:    domain.Liability,
		OpeningBalance: decimal.NewFromInt(50),
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockVoucherRepo.On("GetAccountTotals", mock.Anything, suite.tenantID, account.AccountID, (*time.Time)(nil)).
		Return(decimal.NewFromInt(200), decimal.NewFromInt(500), nil).Once()

	balance, err := suite.service.GetAccountBalance(context.Background(), suite.tenantID, account.AccountID, dto.BalanceParams{})
	suite.NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(350)), "expected 50+500-200=350, got %s", balance)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalanceForPeriod_IgnoresOpening() {
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		TenantID:       suite.tenantID,
		AccountType:    domain.Revenue,
		OpeningBalance: decimal.NewFromInt(9999),
	}
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.tenantID, account.AccountID).
		Return(account, nil).Once()
	suite.mockVoucherRepo.On("GetAccountTotalsForPeriod", mock.Anything, suite.tenantID, account.AccountID, from, to).
		Return(decimal.Zero, decimal.NewFromInt(750), nil).Once()

	movement, err := suite.service.GetAccountBalanceForPeriod(context.Background(), suite.tenantID, account.AccountID, dto.PeriodBalanceParams{From: from, To: to})
	suite.NoError(err)
	suite.True(movement.Equal(decimal.NewFromInt(750)))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
