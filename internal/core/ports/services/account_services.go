package services

import (
	"context"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/nairabooks/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its code within a tenant.
	GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by code.
	ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error)

	// GetAccountsGroupedByType retrieves active accounts grouped by their
	// account type, each with its current balance.
	GetAccountsGroupedByType(ctx context.Context, tenantID string, branchID *string) (map[domain.AccountType][]dto.AccountWithBalance, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates account details. Code and type are immutable.
	UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeleteAccount removes an account. Accounts with ledger history are
	// deactivated instead of removed; system accounts are refused.
	DeleteAccount(ctx context.Context, tenantID string, accountID string, requestingUserID string) error

	// SeedDefaultAccounts creates the standard chart for a new tenant branch.
	SeedDefaultAccounts(ctx context.Context, tenantID string, branchID string, creatorUserID string) error
}

// BalanceSvc defines balance calculations over the ledger
type BalanceSvc interface {
	// GetAccountBalance calculates an account's signed balance, optionally as
	// of a cutoff date (inclusive).
	GetAccountBalance(ctx context.Context, tenantID string, accountID string, params dto.BalanceParams) (decimal.Decimal, error)

	// GetAccountBalanceForPeriod calculates the signed movement over a window,
	// ignoring the opening balance.
	GetAccountBalanceForPeriod(ctx context.Context, tenantID string, accountID string, params dto.PeriodBalanceParams) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	BalanceSvc
}
