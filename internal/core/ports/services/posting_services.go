package services

import (
	"context"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/nairabooks/ledger_backend/internal/dto"
)

// PostingWriterSvc defines write operations on the journal
type PostingWriterSvc interface {
	// PostJournalEntry validates a posting request and writes the voucher and
	// its ledger entries atomically. Nothing is written on validation failure.
	PostJournalEntry(ctx context.Context, tenantID string, req dto.CreatePostingRequest, creatorUserID string) (*domain.JournalVoucher, error)

	// ReverseVoucher creates a mirror-image voucher for a posted voucher and
	// links the pair. A voucher can be reversed at most once.
	ReverseVoucher(ctx context.Context, tenantID string, voucherID string, requestingUserID string) (*domain.JournalVoucher, error)
}

// PostingReaderSvc defines read operations on the journal
type PostingReaderSvc interface {
	// GetVoucherByID retrieves a voucher with its ledger entries.
	GetVoucherByID(ctx context.Context, tenantID string, voucherID string) (*domain.JournalVoucher, error)

	// ListVouchers retrieves vouchers newest first.
	ListVouchers(ctx context.Context, tenantID string, params dto.ListVouchersParams) ([]domain.JournalVoucher, error)

	// ListEntriesByAccount retrieves an account's ledger entries in posting
	// order, optionally bounded by a date window.
	ListEntriesByAccount(ctx context.Context, tenantID string, accountID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, error)
}

// PostingSvcFacade combines all posting-related service interfaces
type PostingSvcFacade interface {
	PostingWriterSvc
	PostingReaderSvc
}
