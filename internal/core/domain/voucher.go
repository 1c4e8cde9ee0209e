package domain

import "time"

// VoucherStatus indicates the state of a journal voucher. Vouchers are
// posted at creation; there is no draft state. A posted voucher moves to
// REVERSED when an offsetting voucher is posted against it.
type VoucherStatus string

const (
	Posted   VoucherStatus = "POSTED"
	Reversed VoucherStatus = "REVERSED"
)

// JournalVoucher is the atomic unit of a business transaction in the ledger:
// a named, dated group of balanced ledger entries.
type JournalVoucher struct {
	VoucherID       string        `json:"voucherID"`
	TenantID        string        `json:"tenantID"`
	BranchID        string        `json:"branchID"`
	VoucherNumber   string        `json:"voucherNumber"` // JV-{year}-{month:02d}-{seq:05d}, sequence per tenant+month
	TransactionDate time.Time     `json:"transactionDate"`
	Description     string        `json:"description"`
	Reference       string        `json:"reference"`
	Status          VoucherStatus `json:"status"`
	PostedAt        time.Time     `json:"postedAt"`

	// Reversal linkage. A reversing voucher points at its original; the
	// original points back once reversed.
	OriginalVoucherID  *string `json:"originalVoucherID,omitempty"`
	ReversingVoucherID *string `json:"reversingVoucherID,omitempty"`

	// Entries are loaded separately for most read paths.
	Entries []LedgerEntry `json:"entries,omitempty"`

	AuditFields
}
