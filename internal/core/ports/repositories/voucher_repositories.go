package repositories

import (
	"context"
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherWriter defines the write path into the ledger. SaveVoucher is the
// only operation anywhere that creates ledger entries.
type VoucherWriter interface {
	// SaveVoucher atomically allocates the voucher number and persists the
	// voucher with all its entries in one database transaction. On any
	// failure nothing is written.
	SaveVoucher(ctx context.Context, voucher domain.JournalVoucher, entries []domain.LedgerEntry) (*domain.JournalVoucher, error)

	// SaveReversal persists the reversal voucher with its entries and flips
	// the original voucher to Reversed in the same transaction. The original
	// must still be Posted; otherwise nothing is written and ErrConflict is
	// returned, so a voucher can never gain two reversals.
	SaveReversal(ctx context.Context, reversal domain.JournalVoucher, entries []domain.LedgerEntry, originalVoucherID string) (*domain.JournalVoucher, error)
}

// VoucherReader defines read operations for vouchers and their entries.
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher without its entries.
	FindVoucherByID(ctx context.Context, tenantID, voucherID string) (*domain.JournalVoucher, error)

	// FindEntriesByVoucherID retrieves all entries of a voucher.
	FindEntriesByVoucherID(ctx context.Context, tenantID, voucherID string) ([]domain.LedgerEntry, error)

	// ListVouchers retrieves vouchers for a tenant, newest first.
	ListVouchers(ctx context.Context, tenantID string, branchID *string, limit, offset int) ([]domain.JournalVoucher, error)

	// ListEntriesByAccount retrieves ledger entries for one account within an
	// optional date window, ordered by transaction date.
	ListEntriesByAccount(ctx context.Context, tenantID, accountID string, from, to *time.Time, limit, offset int) ([]domain.LedgerEntry, error)
}

// BalanceReader defines the debit/credit aggregations the balance engine and
// reports are computed from.
type BalanceReader interface {
	// GetAccountTotals sums debits and credits for an account, optionally
	// limited to entries on or before asOf.
	GetAccountTotals(ctx context.Context, tenantID, accountID string, asOf *time.Time) (totalDebit, totalCredit decimal.Decimal, err error)

	// GetAccountTotalsForPeriod sums debits and credits inside [start, end].
	GetAccountTotalsForPeriod(ctx context.Context, tenantID, accountID string, start, end time.Time) (totalDebit, totalCredit decimal.Decimal, err error)
}

// VoucherRepositoryFacade combines all voucher repository interfaces.
type VoucherRepositoryFacade interface {
	VoucherWriter
	VoucherReader
	BalanceReader
}
