package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/core/services"
	"github.com/nairabooks/ledger_backend/internal/utils/accounting"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, tenantID string, branchID *string, asOf time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, tenantID, branchID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetAccountActivityForPeriod(ctx context.Context, tenantID string, branchID *string, start, end time.Time, types []domain.AccountType) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, tenantID, branchID, start, end, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingService
	tenantID string
	asOf     time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo, accounting.CodePrefixClassifier())
	suite.tenantID = uuid.NewString()
	suite.asOf = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
}

func activity(code, name string, t domain.AccountType, opening, debit, credit int64) domain.AccountActivity {
	return domain.AccountActivity{
		AccountID:      uuid.NewString(),
		Code:           code,
		Name:           name,
		AccountType:    t,
		OpeningBalance: decimal.NewFromInt(opening),
		TotalDebit:     decimal.NewFromInt(debit),
		TotalCredit:    decimal.NewFromInt(credit),
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	suite.mockRepo.On("GetAccountActivity", mock.Anything, suite.tenantID, (*string)(nil), suite.asOf).
		Return([]domain.AccountActivity{
			activity("1000", "Cash", domain.Asset, 0, 500, 0),
			activity("4000", "Sales Revenue", domain.Revenue, 0, 0, 500),
		}, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), suite.tenantID, nil, suite.asOf)

	suite.NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.IsBalanced)
	suite.Require().Len(report.Rows, 2)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(500)))
	suite.True(report.Rows[0].Credit.IsZero())
	suite.True(report.Rows[1].Credit.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalDebit.Equal(report.TotalCredit))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_SkipsSubToleranceBalances() {
	tiny := domain.AccountActivity{
		AccountID:      uuid.NewString(),
		Code:           "5700",
		Name:           "Bank Charges",
		AccountType:    domain.Expense,
		OpeningBalance: decimal.Zero,
		TotalDebit:     decimal.RequireFromString("0.005"),
		TotalCredit:    decimal.Zero,
	}
	suite.mockRepo.On("GetAccountActivity", mock.Anything, suite.tenantID, (*string)(nil), suite.asOf).
		Return([]domain.AccountActivity{tiny}, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), suite.tenantID, nil, suite.asOf)

	suite.NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_OutOfBalanceSurfaced() {
	// A raw debit with no matching credit cannot come from the posting
	// engine; the report must still be produced, flagged unbalanced.
	suite.mockRepo.On("GetAccountActivity", mock.Anything, suite.tenantID, (*string)(nil), suite.asOf).
		Return([]domain.AccountActivity{
			activity("1000", "Cash", domain.Asset, 0, 500, 0),
		}, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), suite.tenantID, nil, suite.asOf)

	suite.NoError(err)
	suite.Require().NotNil(report)
	suite.False(report.IsBalanced)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalCredit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NegativeBalanceFlipsColumn() {
	// Asset driven negative (credit exceeds debits) shows in the credit column.
	suite.mockRepo.On("GetAccountActivity", mock.Anything, suite.tenantID, (*string)(nil), suite.asOf).
		Return([]domain.AccountActivity{
			activity("1100", "Bank", domain.Asset, 0, 100, 400),
			activity("2400", "Loans", domain.Liability, 0, 0, 300),
		}, nil).Once()

	report, err := suite.service.TrialBalance(context.Background(), suite.tenantID, nil, suite.asOf)

	suite.NoError(err)
	suite.Require().Len(report.Rows, 2)
	bankRow := report.Rows[0]
	suite.True(bankRow.Debit.IsZero())
	suite.True(bankRow.Credit.Equal(decimal.NewFromInt(300)))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_Movements() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetAccountActivityForPeriod", mock.Anything, suite.tenantID, (*string)(nil), from, to,
		[]domain.AccountType{domain.Revenue, domain.Expense}).
		Return([]domain.AccountActivity{
			activity("4000", "Sales Revenue", domain.Revenue, 0, 0, 1000),
			activity("5200", "Rent", domain.Expense, 0, 400, 0),
		}, nil).Once()

	report, err := suite.service.ProfitAndLoss(context.Background(), suite.tenantID, nil, from, to)

	suite.NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(400)))
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(600)))
	suite.Len(report.Revenue, 1)
	suite.Len(report.Expenses, 1)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_InvertedPeriodRejected() {
	from := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.ProfitAndLoss(context.Background(), suite.tenantID, nil, from, to)
	suite.Error(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetAccountActivityForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) fiscalYearStart() time.Time {
	return time.Date(suite.asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ClosesWithCurrentEarnings() {
	// One cash sale of 500 within the fiscal year: assets 500 must equal
	// equity once the year-to-date earnings are folded in.
	suite.mockRepo.On("GetAccountActivity", mock.Anything, suite.tenantID, (*string)(nil), suite.asOf).
		Return([]domain.AccountActivity{
			activity("1000", "Cash", domain.Asset, 0, 500, 0),
			activity("4000", "Sales Revenue", domain.Revenue, 0, 0, 500),
		}, nil).Once()
	suite.mockRepo.On("GetAccountActivityForPeriod", mock.Anything, suite.tenantID, (*string)(nil), suite.fiscalYearStart(), suite.asOf,
		[]domain.AccountType{domain.Revenue, domain.Expense}).
		Return([]domain.AccountActivity{
			activity("4000", "Sales Revenue", domain.Revenue, 0, 0, 500),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), suite.tenantID, nil, suite.asOf)

	suite.NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.IsBalanced)
	suite.True(report.Assets.Total.Equal(decimal.NewFromInt(500)))
	suite.Require().Len(report.Assets.Current, 1)
	suite.Empty(report.Assets.NonCurrent)
	suite.True(report.Equity.Total.Equal(decimal.NewFromInt(500)))
	suite.Require().Len(report.Equity.Accounts, 1)
	suite.Equal("Current Year Earnings", report.Equity.Accounts[0].Name)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_PriorYearEarningsAreRetained() {
	// 10,000 of revenue earned entirely in earlier fiscal years: the current
	// year line stays off the statement and the full amount lands in
	// retained earnings.
	suite.mockRepo.On("GetAccountActivity", mock.Anything, suite.tenantID, (*string)(nil), suite.asOf).
		Return([]domain.AccountActivity{
			activity("1000", "Cash", domain.Asset, 0, 10000, 0),
			activity("4000", "Sales Revenue", domain.Revenue, 0, 0, 10000),
		}, nil).Once()
	suite.mockRepo.On("GetAccountActivityForPeriod", mock.Anything, suite.tenantID, (*string)(nil), suite.fiscalYearStart(), suite.asOf,
		[]domain.AccountType{domain.Revenue, domain.Expense}).
		Return([]domain.AccountActivity{}, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), suite.tenantID, nil, suite.asOf)

	suite.NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.IsBalanced)
	suite.Require().Len(report.Equity.Accounts, 1)
	suite.Equal("Retained Earnings", report.Equity.Accounts[0].Name)
	suite.True(report.Equity.Accounts[0].Amount.Equal(decimal.NewFromInt(10000)))
	suite.True(report.Equity.Total.Equal(decimal.NewFromInt(10000)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_SplitsRetainedAndCurrentEarnings() {
	// 6,000 earned in prior years plus 4,000 year to date produce two
	// separate equity lines that still sum to the cumulative 10,000.
	suite.mockRepo.On("GetAccountActivity", mock.Anything, suite.tenantID, (*string)(nil), suite.asOf).
		Return([]domain.AccountActivity{
			activity("1000", "Cash", domain.Asset, 0, 10000, 0),
			activity("4000", "Sales Revenue", domain.Revenue, 0, 0, 12000),
			activity("5200", "Rent", domain.Expense, 0, 2000, 0),
		}, nil).Once()
	suite.mockRepo.On("GetAccountActivityForPeriod", mock.Anything, suite.tenantID, (*string)(nil), suite.fiscalYearStart(), suite.asOf,
		[]domain.AccountType{domain.Revenue, domain.Expense}).
		Return([]domain.AccountActivity{
			activity("4000", "Sales Revenue", domain.Revenue, 0, 0, 5000),
			activity("5200", "Rent", domain.Expense, 0, 1000, 0),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), suite.tenantID, nil, suite.asOf)

	suite.NoError(err)
	suite.Require().NotNil(report)
	suite.True(report.IsBalanced)
	suite.Require().Len(report.Equity.Accounts, 2)
	suite.Equal("Retained Earnings", report.Equity.Accounts[0].Name)
	suite.True(report.Equity.Accounts[0].Amount.Equal(decimal.NewFromInt(6000)))
	suite.Equal("Current Year Earnings", report.Equity.Accounts[1].Name)
	suite.True(report.Equity.Accounts[1].Amount.Equal(decimal.NewFromInt(4000)))
	suite.True(report.Equity.Total.Equal(decimal.NewFromInt(10000)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_CurrentNonCurrentSplit() {
	suite.mockRepo.On("GetAccountActivity", mock.Anything, suite.tenantID, (*string)(nil), suite.asOf).
		Return([]domain.AccountActivity{
			activity("1000", "Cash", domain.Asset, 0, 300, 0),
			activity("1500", "Fixed Assets", domain.Asset, 0, 700, 0),
			activity("2400", "Loans", domain.Liability, 0, 0, 600),
			activity("2600", "Long Term Loans", domain.Liability, 0, 0, 400),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), suite.tenantID, nil, suite.asOf)

	suite.NoError(err)
	suite.Require().Len(report.Assets.Current, 1)
	suite.Require().Len(report.Assets.NonCurrent, 1)
	suite.Equal("1000", report.Assets.Current[0].Code)
	suite.Equal("1500", report.Assets.NonCurrent[0].Code)
	suite.Require().Len(report.Liabilities.Current, 1)
	suite.Require().Len(report.Liabilities.NonCurrent, 1)
	suite.Equal("2400", report.Liabilities.Current[0].Code)
	suite.Equal("2600", report.Liabilities.NonCurrent[0].Code)
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_OpeningBalancesParticipate() {
	suite.mockRepo.On("GetAccountActivity", mock.Anything, suite.tenantID, (*string)(nil), suite.asOf).
		Return([]domain.AccountActivity{
			activity("1100", "Bank", domain.Asset, 1000, 0, 0),
			activity("3000", "Owner's Capital", domain.Equity, 1000, 0, 0),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(context.Background(), suite.tenantID, nil, suite.asOf)

	suite.NoError(err)
	suite.True(report.IsBalanced)
	suite.True(report.Assets.Total.Equal(decimal.NewFromInt(1000)))
	suite.True(report.Equity.Total.Equal(decimal.NewFromInt(1000)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
