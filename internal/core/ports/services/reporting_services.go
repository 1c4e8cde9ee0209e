package services

import (
	"context"
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial statements
type ReportingService interface {
	// TrialBalance generates a trial balance as of a date.
	TrialBalance(ctx context.Context, tenantID string, branchID *string, asOf time.Time) (*domain.TrialBalance, error)

	// ProfitAndLoss generates a profit and loss statement for a period.
	ProfitAndLoss(ctx context.Context, tenantID string, branchID *string, from, to time.Time) (*domain.ProfitAndLoss, error)

	// BalanceSheet generates a balance sheet as of a date, including the
	// synthetic retained earnings line.
	BalanceSheet(ctx context.Context, tenantID string, branchID *string, asOf time.Time) (*domain.BalanceSheet, error)
}
