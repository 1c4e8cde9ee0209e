package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/dto"
	"github.com/nairabooks/ledger_backend/internal/middleware"
	"github.com/nairabooks/ledger_backend/internal/utils/accounting"
)

// postingService is the single write path into the ledger. Everything that
// creates ledger entries, including the payroll bridge, goes through
// PostJournalEntry.
type postingService struct {
	voucherRepo portsrepo.VoucherRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewPostingService creates a new PostingService.
func NewPostingService(voucherRepo portsrepo.VoucherRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.PostingSvcFacade {
	return &postingService{
		voucherRepo: voucherRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// validateLines checks the shape of every posting line and the double-entry
// balance. It returns the debit and credit totals for reuse.
func (s *postingService) validateLines(lines []dto.PostingLine) (debitTotal, creditTotal decimal.Decimal, err error) {
	if len(lines) < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: at least two lines required", apperrors.ErrInvalidLine)
	}

	// A single account debited and credited for the same amount is a legal,
	// if unusual, voucher; only the line shape and the balance are checked.
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: negative amount on line %d", apperrors.ErrInvalidLine, i)
		}
		hasDebit := line.Debit.IsPositive()
		hasCredit := line.Credit.IsPositive()
		if hasDebit == hasCredit {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d must set exactly one of debit or credit", apperrors.ErrInvalidLine, i)
		}
		debitTotal = debitTotal.Add(line.Debit)
		creditTotal = creditTotal.Add(line.Credit)
	}

	if !accounting.WithinTolerance(debitTotal, creditTotal) {
		return decimal.Zero, decimal.Zero, &apperrors.UnbalancedEntryError{
			DebitTotal:  debitTotal.String(),
			CreditTotal: creditTotal.String(),
		}
	}
	return debitTotal, creditTotal, nil
}

// PostJournalEntry validates a posting request and writes the voucher with
// its ledger entries atomically. Nothing is written on validation failure.
func (s *postingService) PostJournalEntry(ctx context.Context, tenantID string, req dto.CreatePostingRequest, creatorUserID string) (*domain.JournalVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, _, err := s.validateLines(req.Lines); err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(req.Lines))
	seen := make(map[string]bool, len(req.Lines))
	for _, line := range req.Lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for posting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found || acc.TenantID != tenantID {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrInvalidLine, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrInvalidLine, acc.Code)
		}
	}

	now := time.Now().UTC()
	txnDate := now
	if req.TransactionDate != nil {
		txnDate = *req.TransactionDate
	}

	voucherID := uuid.NewString()
	source := domain.NewSourceRef(req.SourceType, req.SourceID)

	entries := make([]domain.LedgerEntry, len(req.Lines))
	for i, line := range req.Lines {
		description := line.Description
		if description == "" {
			description = req.Description
		}
		entries[i] = domain.LedgerEntry{
			EntryID:         uuid.NewString(),
			TenantID:        tenantID,
			BranchID:        req.BranchID,
			AccountID:       line.AccountID,
			VoucherID:       voucherID,
			TransactionDate: txnDate,
			Description:     description,
			Debit:           line.Debit,
			Credit:          line.Credit,
			Source:          source,
			CreatedAt:       now,
		}
	}

	voucher := domain.JournalVoucher{
		VoucherID:       voucherID,
		TenantID:        tenantID,
		BranchID:        req.BranchID,
		TransactionDate: txnDate,
		Description:     req.Description,
		Reference:       req.Reference,
		Status:          domain.Posted,
		PostedAt:        now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// The repository allocates the voucher number inside the same transaction
	// as the writes, so a failed posting never consumes a number visible here.
	saved, err := s.voucherRepo.SaveVoucher(ctx, voucher, entries)
	if err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	logger.Info("Voucher posted",
		slog.String("voucher_id", saved.VoucherID),
		slog.String("voucher_number", saved.VoucherNumber),
		slog.Int("lines", len(entries)),
	)
	saved.Entries = entries
	return saved, nil
}

// ReverseVoucher creates a mirror-image voucher for a posted voucher and
// links the pair. A voucher can be reversed at most once.
func (s *postingService) ReverseVoucher(ctx context.Context, tenantID string, voucherID string, requestingUserID string) (*domain.JournalVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.voucherRepo.FindVoucherByID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	if original.Status == domain.Reversed {
		return nil, fmt.Errorf("%w: voucher %s is already reversed", apperrors.ErrConflict, original.VoucherNumber)
	}
	if original.OriginalVoucherID != nil {
		return nil, fmt.Errorf("%w: voucher %s is itself a reversal", apperrors.ErrConflict, original.VoucherNumber)
	}

	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for voucher %s: %w", voucherID, err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversalEntries := make([]domain.LedgerEntry, len(entries))
	for i, e := range entries {
		reversalEntries[i] = domain.LedgerEntry{
			EntryID:         uuid.NewString(),
			TenantID:        tenantID,
			BranchID:        e.BranchID,
			AccountID:       e.AccountID,
			VoucherID:       reversalID,
			TransactionDate: now,
			Description:     fmt.Sprintf("Reversal: %s", e.Description),
			Debit:           e.Credit,
			Credit:          e.Debit,
			Source:          e.Source,
			CreatedAt:       now,
		}
	}

	reversal := domain.JournalVoucher{
		VoucherID:         reversalID,
		TenantID:          tenantID,
		BranchID:          original.BranchID,
		TransactionDate:   now,
		Description:       fmt.Sprintf("Reversal of %s", original.VoucherNumber),
		Reference:         original.Reference,
		Status:            domain.Posted,
		PostedAt:          now,
		OriginalVoucherID: &original.VoucherID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	// Saving the reversal and flipping the original happen in one repository
	// transaction; a concurrent reversal loses on the original's status guard.
	saved, err := s.voucherRepo.SaveReversal(ctx, reversal, reversalEntries, original.VoucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: voucher %s is already reversed", apperrors.ErrConflict, original.VoucherNumber)
		}
		logger.Error("Failed to save reversal voucher", slog.String("error", err.Error()), slog.String("original_voucher_id", voucherID))
		return nil, fmt.Errorf("failed to save reversal voucher: %w", err)
	}

	logger.Info("Voucher reversed",
		slog.String("voucher_id", voucherID),
		slog.String("reversal_voucher_id", saved.VoucherID),
	)
	saved.Entries = reversalEntries
	return saved, nil
}

// GetVoucherByID retrieves a voucher with its ledger entries.
func (s *postingService) GetVoucherByID(ctx context.Context, tenantID string, voucherID string) (*domain.JournalVoucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	entries, err := s.voucherRepo.FindEntriesByVoucherID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for voucher %s: %w", voucherID, err)
	}
	voucher.Entries = entries
	return voucher, nil
}

// ListVouchers retrieves vouchers newest first.
func (s *postingService) ListVouchers(ctx context.Context, tenantID string, params dto.ListVouchersParams) ([]domain.JournalVoucher, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	vouchers, err := s.voucherRepo.ListVouchers(ctx, tenantID, params.BranchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

// ListEntriesByAccount retrieves an account's ledger entries in posting order.
func (s *postingService) ListEntriesByAccount(ctx context.Context, tenantID string, accountID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	entries, err := s.voucherRepo.ListEntriesByAccount(ctx, tenantID, accountID, params.From, params.To, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}
