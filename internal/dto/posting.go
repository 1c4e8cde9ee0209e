package dto

import (
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingLine is one debit-or-credit line of a posting request. Exactly one
// of Debit/Credit must be greater than zero.
type PostingLine struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreatePostingRequest is the normalized posting request document services
// and the payroll bridge hand to the posting engine.
type CreatePostingRequest struct {
	BranchID        string        `json:"branchID" binding:"required"`
	Lines           []PostingLine `json:"lines" binding:"required,min=1,dive"`
	Description     string        `json:"description"`
	Reference       string        `json:"reference"`
	TransactionDate *time.Time    `json:"transactionDate"` // defaults to today
	SourceType      string        `json:"sourceType"`      // unrecognized values simply omit the reference
	SourceID        string        `json:"sourceID"`
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	EntryID         string           `json:"entryID"`
	AccountID       string           `json:"accountID"`
	VoucherID       string           `json:"voucherID"`
	TransactionDate time.Time        `json:"transactionDate"`
	Description     string           `json:"description"`
	Debit           decimal.Decimal  `json:"debit"`
	Credit          decimal.Decimal  `json:"credit"`
	SourceType      string           `json:"sourceType,omitempty"`
	SourceID        string           `json:"sourceID,omitempty"`
	IsReconciled    bool             `json:"isReconciled"`
}

// VoucherResponse defines the data returned for a journal voucher.
type VoucherResponse struct {
	VoucherID          string                `json:"voucherID"`
	BranchID           string                `json:"branchID"`
	VoucherNumber      string                `json:"voucherNumber"`
	TransactionDate    time.Time             `json:"transactionDate"`
	Description        string                `json:"description"`
	Reference          string                `json:"reference"`
	Status             domain.VoucherStatus  `json:"status"`
	PostedAt           time.Time             `json:"postedAt"`
	OriginalVoucherID  *string               `json:"originalVoucherID,omitempty"`
	ReversingVoucherID *string               `json:"reversingVoucherID,omitempty"`
	Entries            []LedgerEntryResponse `json:"entries,omitempty"`
}

// ListVouchersParams defines query parameters for listing vouchers.
type ListVouchersParams struct {
	BranchID *string `form:"branchID"`
	Limit    int     `form:"limit,default=20"`
	Offset   int     `form:"offset,default=0"`
}

// ListEntriesParams defines query parameters for the ledger-entry listing.
type ListEntriesParams struct {
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Limit  int        `form:"limit,default=50"`
	Offset int        `form:"offset,default=0"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to a response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		AccountID:       e.AccountID,
		VoucherID:       e.VoucherID,
		TransactionDate: e.TransactionDate,
		Description:     e.Description,
		Debit:           e.Debit,
		Credit:          e.Credit,
		SourceType:      string(e.Source.Type),
		SourceID:        e.Source.ID,
		IsReconciled:    e.IsReconciled,
	}
}

// ToLedgerEntryResponses converts a slice of ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}

// ToVoucherResponse converts a domain.JournalVoucher to a response DTO.
func ToVoucherResponse(v *domain.JournalVoucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:          v.VoucherID,
		BranchID:           v.BranchID,
		VoucherNumber:      v.VoucherNumber,
		TransactionDate:    v.TransactionDate,
		Description:        v.Description,
		Reference:          v.Reference,
		Status:             v.Status,
		PostedAt:           v.PostedAt,
		OriginalVoucherID:  v.OriginalVoucherID,
		ReversingVoucherID: v.ReversingVoucherID,
		Entries:            ToLedgerEntryResponses(v.Entries),
	}
}

// ToVoucherResponses converts a slice of vouchers, omitting entries.
func ToVoucherResponses(vouchers []domain.JournalVoucher) []VoucherResponse {
	res := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		res[i] = ToVoucherResponse(&vouchers[i])
	}
	return res
}
