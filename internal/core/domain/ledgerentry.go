package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one debit-or-credit line in the ledger. Entries are
// append-only: corrections are new offsetting entries, never updates.
// Exactly one of Debit/Credit is greater than zero.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	TenantID        string          `json:"tenantID"`
	BranchID        string          `json:"branchID"`
	AccountID       string          `json:"accountID"`
	VoucherID       string          `json:"voucherID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Source          SourceRef       `json:"source,omitempty"`
	IsReconciled    bool            `json:"isReconciled"`
	CreatedAt       time.Time       `json:"createdAt"`
}
