package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherStatus indicates the state of a journal voucher.
type VoucherStatus string

const (
	Posted   VoucherStatus = "POSTED"
	Reversed VoucherStatus = "REVERSED"
)

// JournalVoucher represents a single balanced financial event. Its lines live
// in ledger_entries.
type JournalVoucher struct {
	VoucherID          string        `db:"voucher_id"`
	TenantID           string        `db:"tenant_id"`
	BranchID           string        `db:"branch_id"`
	VoucherNumber      string        `db:"voucher_number"`
	TransactionDate    time.Time     `db:"transaction_date"`
	Description        string        `db:"description"`
	Reference          string        `db:"reference"`
	Status             VoucherStatus `db:"status"`
	PostedAt           time.Time     `db:"posted_at"`
	OriginalVoucherID  string        `db:"original_voucher_id"`  // Nullable
	ReversingVoucherID string        `db:"reversing_voucher_id"` // Nullable
	AuditFields
}

// LedgerEntry is one append-only debit-or-credit line of a voucher. Entries
// are never updated after insert except for the reconciliation flag.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	TenantID        string          `db:"tenant_id"`
	BranchID        string          `db:"branch_id"`
	AccountID       string          `db:"account_id"`
	VoucherID       string          `db:"voucher_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	Debit           decimal.Decimal `db:"debit"`
	Credit          decimal.Decimal `db:"credit"`
	SourceType      string          `db:"source_type"` // Nullable discriminator
	SourceID        string          `db:"source_id"`   // Nullable
	IsReconciled    bool            `db:"is_reconciled"`
	CreatedAt       time.Time       `db:"created_at"`
}

// VoucherSequence backs per-tenant-per-month voucher numbering. last_value is
// advanced atomically with an upsert inside the posting transaction.
type VoucherSequence struct {
	TenantID  string `db:"tenant_id"`
	Year      int    `db:"year"`
	Month     int    `db:"month"`
	LastValue int64  `db:"last_value"`
}
