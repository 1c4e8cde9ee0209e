package mapping

import (
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/nairabooks/ledger_backend/internal/models"
)

// ToModelVoucher converts a domain JournalVoucher to a model JournalVoucher.
// Entries are not carried over; they are persisted separately.
func ToModelVoucher(d domain.JournalVoucher) models.JournalVoucher {
	originalID := ""
	if d.OriginalVoucherID != nil {
		originalID = *d.OriginalVoucherID
	}
	reversingID := ""
	if d.ReversingVoucherID != nil {
		reversingID = *d.ReversingVoucherID
	}
	return models.JournalVoucher{
		VoucherID:          d.VoucherID,
		TenantID:           d.TenantID,
		BranchID:           d.BranchID,
		VoucherNumber:      d.VoucherNumber,
		TransactionDate:    d.TransactionDate,
		Description:        d.Description,
		Reference:          d.Reference,
		Status:             models.VoucherStatus(d.Status),
		PostedAt:           d.PostedAt,
		OriginalVoucherID:  originalID,
		ReversingVoucherID: reversingID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVoucher converts a model JournalVoucher to a domain JournalVoucher
func ToDomainVoucher(m models.JournalVoucher) domain.JournalVoucher {
	var originalID *string
	if m.OriginalVoucherID != "" {
		v := m.OriginalVoucherID
		originalID = &v
	}
	var reversingID *string
	if m.ReversingVoucherID != "" {
		v := m.ReversingVoucherID
		reversingID = &v
	}
	return domain.JournalVoucher{
		VoucherID:          m.VoucherID,
		TenantID:           m.TenantID,
		BranchID:           m.BranchID,
		VoucherNumber:      m.VoucherNumber,
		TransactionDate:    m.TransactionDate,
		Description:        m.Description,
		Reference:          m.Reference,
		Status:             domain.VoucherStatus(m.Status),
		PostedAt:           m.PostedAt,
		OriginalVoucherID:  originalID,
		ReversingVoucherID: reversingID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVoucherSlice converts a slice of model JournalVouchers to a slice of domain JournalVouchers
func ToDomainVoucherSlice(ms []models.JournalVoucher) []domain.JournalVoucher {
	ds := make([]domain.JournalVoucher, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVoucher(m)
	}
	return ds
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		TenantID:        d.TenantID,
		BranchID:        d.BranchID,
		AccountID:       d.AccountID,
		VoucherID:       d.VoucherID,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		Debit:           d.Debit,
		Credit:          d.Credit,
		SourceType:      string(d.Source.Type),
		SourceID:        d.Source.ID,
		IsReconciled:    d.IsReconciled,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		TenantID:        m.TenantID,
		BranchID:        m.BranchID,
		AccountID:       m.AccountID,
		VoucherID:       m.VoucherID,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		Debit:           m.Debit,
		Credit:          m.Credit,
		Source:          domain.NewSourceRef(m.SourceType, m.SourceID),
		IsReconciled:    m.IsReconciled,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to a slice of domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
