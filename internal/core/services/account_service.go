package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/dto"
	"github.com/nairabooks/ledger_backend/internal/middleware"
	"github.com/nairabooks/ledger_backend/internal/utils/accounting"
)

// seedAccount is one row of the default chart provisioned for new tenants.
type seedAccount struct {
	Code string
	Name string
	Type domain.AccountType
}

// defaultChart is the standard chart of accounts seeded on tenant creation.
// All rows are system accounts; the payroll bridge depends on the codes
// staying stable.
var defaultChart = []seedAccount{
	{"1000", "Cash", domain.Asset},
	{"1100", "Bank", domain.Asset},
	{"1200", "Accounts Receivable", domain.Asset},
	{"1300", "Inventory", domain.Asset},
	{"1400", "VAT Refundable", domain.Asset},
	{"1500", "Fixed Assets", domain.Asset},
	{"1510", "Accumulated Depreciation", domain.Asset},
	{"2000", "Accounts Payable", domain.Liability},
	{"2100", "VAT Payable", domain.Liability},
	{"2200", "PAYE Payable", domain.Liability},
	{"2210", "Pension Payable", domain.Liability},
	{"2300", "Payroll Liabilities", domain.Liability},
	{"2400", "Loans", domain.Liability},
	{"3000", "Owner's Capital", domain.Equity},
	{"3100", "Retained Earnings", domain.Equity},
	{"4000", "Sales Revenue", domain.Revenue},
	{"4100", "Other Income", domain.Revenue},
	{"4200", "Interest Income", domain.Revenue},
	{"4300", "Discount Received", domain.Revenue},
	{"5000", "Cost of Goods Sold", domain.Expense},
	{"5100", "Salaries & Wages", domain.Expense},
	{"5200", "Rent", domain.Expense},
	{"5300", "Utilities", domain.Expense},
	{"5400", "Office Expenses", domain.Expense},
	{"5500", "Travel & Vehicle", domain.Expense},
	{"5600", "Marketing", domain.Expense},
	{"5700", "Bank Charges", domain.Expense},
	{"5800", "Bad Debts", domain.Expense},
	{"5900", "Depreciation Expense", domain.Expense},
}

// Well-known system account codes the payroll bridge resolves against.
const (
	CodeBank           = "1100"
	CodePAYEPayable    = "2200"
	CodePensionPayable = "2210"
	CodeSalariesWages  = "5100"
)

// accountService provides chart-of-accounts operations and account balances.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	balanceRepo portsrepo.BalanceReader
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, balanceRepo portsrepo.BalanceReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after uniqueness and parent checks.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check account code uniqueness", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code %s already in use", apperrors.ErrDuplicateCode, req.Code)
	}

	if req.OpeningBalance.IsNegative() && req.AccountType != domain.Asset && req.AccountType != domain.Liability {
		// Contra balances only make sense on balance-sheet accounts.
		return nil, fmt.Errorf("%w: negative opening balance not allowed for %s accounts", apperrors.ErrValidation, req.AccountType)
	}

	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("parent account lookup failed: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, req.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenantID,
		BranchID:        req.BranchID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		OpeningBalance:  req.OpeningBalance,
		IsSystemAccount: false,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount updates mutable account fields. Reparenting is checked for
// cycles by walking the ancestor chain.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		if account.IsSystemAccount && !*req.IsActive {
			return nil, fmt.Errorf("%w: system accounts cannot be deactivated", apperrors.ErrProtectedAccount)
		}
		account.IsActive = *req.IsActive
	}
	if req.ParentAccountID != nil {
		if *req.ParentAccountID == accountID {
			return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("parent account lookup failed: %w", err)
		}
		if parent.AccountType != account.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, account.AccountType)
		}
		if err := s.checkNoCycle(ctx, tenantID, accountID, parent); err != nil {
			return nil, err
		}
		account.ParentAccountID = req.ParentAccountID
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// checkNoCycle walks up from the proposed parent; finding the account being
// reparented on the way means the move would create a loop in the tree.
func (s *accountService) checkNoCycle(ctx context.Context, tenantID, accountID string, parent *domain.Account) error {
	const maxDepth = 100
	current := parent
	for depth := 0; depth < maxDepth; depth++ {
		if current.AccountID == accountID {
			return fmt.Errorf("%w: reparenting would create a cycle", apperrors.ErrValidation)
		}
		if current.ParentAccountID == nil {
			return nil
		}
		next, err := s.accountRepo.FindAccountByID(ctx, tenantID, *current.ParentAccountID)
		if err != nil {
			return fmt.Errorf("ancestor lookup failed: %w", err)
		}
		current = next
	}
	return fmt.Errorf("%w: account hierarchy too deep", apperrors.ErrValidation)
}

// DeleteAccount removes an account. System accounts are refused; accounts
// with ledger history are deactivated instead so the ledger stays replayable.
func (s *accountService) DeleteAccount(ctx context.Context, tenantID string, accountID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.IsSystemAccount {
		return fmt.Errorf("%w: account %s", apperrors.ErrProtectedAccount, account.Code)
	}

	hasActivity, err := s.accountRepo.HasLedgerActivity(ctx, tenantID, accountID)
	if err != nil {
		return fmt.Errorf("failed to check ledger activity: %w", err)
	}
	if hasActivity {
		if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, requestingUserID); err != nil {
			return fmt.Errorf("failed to deactivate account: %w", err)
		}
		logger.Info("Account deactivated instead of deleted", slog.String("account_id", accountID))
		return nil
	}

	if err := s.accountRepo.DeleteAccount(ctx, tenantID, accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// SeedDefaultAccounts creates the standard chart for a new tenant branch in
// one batch.
func (s *accountService) SeedDefaultAccounts(ctx context.Context, tenantID string, branchID string, creatorUserID string) error {
	now := time.Now().UTC()
	accounts := make([]domain.Account, len(defaultChart))
	for i, row := range defaultChart {
		accounts[i] = domain.Account{
			AccountID:       uuid.NewString(),
			TenantID:        tenantID,
			BranchID:        branchID,
			Code:            row.Code,
			Name:            row.Name,
			AccountType:     row.Type,
			OpeningBalance:  decimal.Zero,
			IsSystemAccount: true,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}
	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("failed to seed default accounts: %w", err)
	}
	return nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its tenant-unique code.
func (s *accountService) GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts matching the filter, ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := domain.AccountFilter{
		BranchID:    params.BranchID,
		AccountType: params.AccountType,
		IsActive:    params.IsActive,
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountsGroupedByType returns active accounts bucketed by type, each
// with its current balance.
func (s *accountService) GetAccountsGroupedByType(ctx context.Context, tenantID string, branchID *string) (map[domain.AccountType][]dto.AccountWithBalance, error) {
	active := true
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, domain.AccountFilter{BranchID: branchID, IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	grouped := make(map[domain.AccountType][]dto.AccountWithBalance)
	for i := range accounts {
		acc := &accounts[i]
		balance, err := s.balanceFor(ctx, acc, nil)
		if err != nil {
			return nil, err
		}
		grouped[acc.AccountType] = append(grouped[acc.AccountType], dto.AccountWithBalance{
			AccountResponse: dto.ToAccountResponse(acc),
			Balance:         balance,
		})
	}
	return grouped, nil
}

// GetAccountBalance calculates an account's signed balance, optionally as of
// a cutoff date.
func (s *accountService) GetAccountBalance(ctx context.Context, tenantID string, accountID string, params dto.BalanceParams) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return s.balanceFor(ctx, account, params.AsOf)
}

// GetAccountBalanceForPeriod calculates the signed movement over a window.
func (s *accountService) GetAccountBalanceForPeriod(ctx context.Context, tenantID string, accountID string, params dto.PeriodBalanceParams) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	totalDebit, totalCredit, err := s.balanceRepo.GetAccountTotalsForPeriod(ctx, tenantID, accountID, params.From, params.To)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate entries: %w", err)
	}
	return accounting.PeriodMovement(account.AccountType, totalDebit, totalCredit)
}

func (s *accountService) balanceFor(ctx context.Context, account *domain.Account, asOf *time.Time) (decimal.Decimal, error) {
	totalDebit, totalCredit, err := s.balanceRepo.GetAccountTotals(ctx, account.TenantID, account.AccountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to aggregate entries for account %s: %w", account.AccountID, err)
	}
	return accounting.SignedBalance(account.AccountType, account.OpeningBalance, totalDebit, totalCredit)
}
