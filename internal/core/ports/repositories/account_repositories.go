package repositories

import (
	"context"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
// Every query is tenant-scoped; a lookup that omits the tenant is a bug,
// not a valid code path.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its tenant-unique code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountByName retrieves an account by its name.
	FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountsByType retrieves all active accounts of a type, ordered by code.
	FindAccountsByType(ctx context.Context, tenantID string, accountType domain.AccountType) ([]domain.Account, error)

	// ListAccounts retrieves accounts with optional branch/type/active filters, ordered by code.
	ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error)

	// HasLedgerActivity reports whether any ledger entry references the account.
	HasLedgerActivity(ctx context.Context, tenantID, accountID string) (bool, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts persists a batch of accounts in one transaction (chart seeding).
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates the mutable fields of an account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, tenantID, accountID, updatedBy string) error

	// DeleteAccount hard-deletes an account. Callers must have verified the
	// account has no ledger history.
	DeleteAccount(ctx context.Context, tenantID, accountID string) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
