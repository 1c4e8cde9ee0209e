package repositories

import (
	"context"
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
)

// ReportingRepository supplies the per-account aggregates financial
// statements are built from. Implementations must run each call inside a
// snapshot-consistent (repeatable-read) read-only transaction so a report
// never sees half of a concurrently committed voucher.
type ReportingRepository interface {
	// GetAccountActivity returns every active account with its opening
	// balance and debit/credit totals for entries dated on or before asOf.
	// Accounts without entries are included with zero totals.
	GetAccountActivity(ctx context.Context, tenantID string, branchID *string, asOf time.Time) ([]domain.AccountActivity, error)

	// GetAccountActivityForPeriod returns accounts of the given types with
	// debit/credit totals restricted to [start, end]. Opening balances are
	// reported as zero: period queries feed movement computations.
	GetAccountActivityForPeriod(ctx context.Context, tenantID string, branchID *string, start, end time.Time, types []domain.AccountType) ([]domain.AccountActivity, error)
}
