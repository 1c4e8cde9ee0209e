package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/middleware"
	"github.com/nairabooks/ledger_backend/internal/utils/accounting"
)

// reportingService builds financial statements from per-account aggregates.
// It never reads individual ledger entries; the repository hands it opening
// balances plus debit/credit totals and every figure is derived through the
// accounting package.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	classifier    accounting.Classifier
}

// NewReportingService creates a new ReportingService. The classifier decides
// current versus non-current placement on the balance sheet.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, classifier accounting.Classifier) portssvc.ReportingService {
	if classifier == nil {
		classifier = accounting.CodePrefixClassifier()
	}
	return &reportingService{
		reportingRepo: reportingRepo,
		classifier:    classifier,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance as of a date. An out-of-balance
// result is returned with IsBalanced false and logged as an integrity alert,
// never swallowed.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, branchID *string, asOf time.Time) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activities, err := s.reportingRepo.GetAccountActivity(ctx, tenantID, branchID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load account activity: %w", err)
	}

	report := &domain.TrialBalance{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, act := range activities {
		balance, err := accounting.SignedBalance(act.AccountType, act.OpeningBalance, act.TotalDebit, act.TotalCredit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", act.Code, err)
		}
		if !accounting.Displayable(balance) {
			continue
		}
		debit, credit := accounting.DebitCreditColumns(act.AccountType, balance)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   act.AccountID,
			Code:        act.Code,
			Name:        act.Name,
			AccountType: act.AccountType,
			Debit:       debit.RoundBank(2),
			Credit:      credit.RoundBank(2),
		})
		report.TotalDebit = report.TotalDebit.Add(debit)
		report.TotalCredit = report.TotalCredit.Add(credit)
	}

	report.IsBalanced = accounting.WithinTolerance(report.TotalDebit, report.TotalCredit)
	report.TotalDebit = report.TotalDebit.RoundBank(2)
	report.TotalCredit = report.TotalCredit.RoundBank(2)

	if !report.IsBalanced {
		logger.Error("Trial balance out of balance",
			slog.String("error", apperrors.ErrLedgerIntegrity.Error()),
			slog.String("tenant_id", tenantID),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()),
		)
	}
	return report, nil
}

// ProfitAndLoss generates a profit and loss statement over a period. Amounts
// are period movements; opening balances do not participate.
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenantID string, branchID *string, from, to time.Time) (*domain.ProfitAndLoss, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end before period start", apperrors.ErrValidation)
	}

	activities, err := s.reportingRepo.GetAccountActivityForPeriod(ctx, tenantID, branchID, from, to, []domain.AccountType{domain.Revenue, domain.Expense})
	if err != nil {
		return nil, fmt.Errorf("failed to load period activity: %w", err)
	}

	report := &domain.ProfitAndLoss{
		PeriodStart:   from,
		PeriodEnd:     to,
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, act := range activities {
		movement, err := accounting.PeriodMovement(act.AccountType, act.TotalDebit, act.TotalCredit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", act.Code, err)
		}
		if !accounting.Displayable(movement) {
			continue
		}
		row := domain.AccountAmount{
			AccountID: act.AccountID,
			Code:      act.Code,
			Name:      act.Name,
			Amount:    movement.RoundBank(2),
		}
		switch act.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, row)
			report.TotalRevenue = report.TotalRevenue.Add(movement)
		case domain.Expense:
			report.Expenses = append(report.Expenses, row)
			report.TotalExpenses = report.TotalExpenses.Add(movement)
		}
	}

	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses).RoundBank(2)
	report.TotalRevenue = report.TotalRevenue.RoundBank(2)
	report.TotalExpenses = report.TotalExpenses.RoundBank(2)
	return report, nil
}

// BalanceSheet generates a balance sheet as of a date. Revenue and expense
// balances fold into equity as two synthetic lines: the fiscal-year-to-date
// net profit as Current Year Earnings, everything earlier as Retained
// Earnings. Together they are what makes the statement close.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, branchID *string, asOf time.Time) (*domain.BalanceSheet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activities, err := s.reportingRepo.GetAccountActivity(ctx, tenantID, branchID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load account activity: %w", err)
	}

	report := &domain.BalanceSheet{
		AsOf: asOf,
		Assets: domain.BalanceSheetSection{
			Current:    []domain.AccountAmount{},
			NonCurrent: []domain.AccountAmount{},
			Total:      decimal.Zero,
		},
		Liabilities: domain.BalanceSheetSection{
			Current:    []domain.AccountAmount{},
			NonCurrent: []domain.AccountAmount{},
			Total:      decimal.Zero,
		},
		Equity: domain.EquitySection{
			Accounts: []domain.AccountAmount{},
			Total:    decimal.Zero,
		},
	}

	cumulativeEarnings := decimal.Zero
	hasEarningsAccounts := false

	for _, act := range activities {
		balance, err := accounting.SignedBalance(act.AccountType, act.OpeningBalance, act.TotalDebit, act.TotalCredit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", act.Code, err)
		}

		switch act.AccountType {
		case domain.Revenue:
			hasEarningsAccounts = true
			cumulativeEarnings = cumulativeEarnings.Add(balance)
			continue
		case domain.Expense:
			hasEarningsAccounts = true
			cumulativeEarnings = cumulativeEarnings.Sub(balance)
			continue
		}

		if !accounting.Displayable(balance) {
			continue
		}
		row := domain.AccountAmount{
			AccountID: act.AccountID,
			Code:      act.Code,
			Name:      act.Name,
			Amount:    balance.RoundBank(2),
		}

		switch act.AccountType {
		case domain.Asset:
			report.Assets.Total = report.Assets.Total.Add(balance)
			if s.classifier.IsCurrent(act.AccountType, act.Code) {
				report.Assets.Current = append(report.Assets.Current, row)
			} else {
				report.Assets.NonCurrent = append(report.Assets.NonCurrent, row)
			}
		case domain.Liability:
			report.Liabilities.Total = report.Liabilities.Total.Add(balance)
			if s.classifier.IsCurrent(act.AccountType, act.Code) {
				report.Liabilities.Current = append(report.Liabilities.Current, row)
			} else {
				report.Liabilities.NonCurrent = append(report.Liabilities.NonCurrent, row)
			}
		case domain.Equity:
			report.Equity.Total = report.Equity.Total.Add(balance)
			report.Equity.Accounts = append(report.Equity.Accounts, row)
		}
	}

	// The current-year line carries only the fiscal-year-to-date net profit;
	// earnings from earlier years land in retained earnings.
	currentYearEarnings := decimal.Zero
	if hasEarningsAccounts {
		fiscalYearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
		periodActivities, err := s.reportingRepo.GetAccountActivityForPeriod(ctx, tenantID, branchID, fiscalYearStart, asOf, []domain.AccountType{domain.Revenue, domain.Expense})
		if err != nil {
			return nil, fmt.Errorf("failed to load fiscal year activity: %w", err)
		}
		for _, act := range periodActivities {
			movement, err := accounting.PeriodMovement(act.AccountType, act.TotalDebit, act.TotalCredit)
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", act.Code, err)
			}
			switch act.AccountType {
			case domain.Revenue:
				currentYearEarnings = currentYearEarnings.Add(movement)
			case domain.Expense:
				currentYearEarnings = currentYearEarnings.Sub(movement)
			}
		}
	}
	retainedEarnings := cumulativeEarnings.Sub(currentYearEarnings)

	if accounting.Displayable(retainedEarnings) {
		report.Equity.Accounts = append(report.Equity.Accounts, domain.AccountAmount{
			Name:   "Retained Earnings",
			Amount: retainedEarnings.RoundBank(2),
		})
	}
	if accounting.Displayable(currentYearEarnings) {
		report.Equity.Accounts = append(report.Equity.Accounts, domain.AccountAmount{
			Name:   "Current Year Earnings",
			Amount: currentYearEarnings.RoundBank(2),
		})
	}
	report.Equity.Total = report.Equity.Total.Add(cumulativeEarnings)

	liabilitiesAndEquity := report.Liabilities.Total.Add(report.Equity.Total)
	report.IsBalanced = accounting.WithinTolerance(report.Assets.Total, liabilitiesAndEquity)

	report.Assets.Total = report.Assets.Total.RoundBank(2)
	report.Liabilities.Total = report.Liabilities.Total.RoundBank(2)
	report.Equity.Total = report.Equity.Total.RoundBank(2)

	if !report.IsBalanced {
		logger.Error("Balance sheet does not close",
			slog.String("error", apperrors.ErrLedgerIntegrity.Error()),
			slog.String("tenant_id", tenantID),
			slog.String("total_assets", report.Assets.Total.String()),
			slog.String("liabilities_and_equity", liabilitiesAndEquity.RoundBank(2).String()),
		)
	}
	return report, nil
}
