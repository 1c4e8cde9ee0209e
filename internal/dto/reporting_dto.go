package dto

import (
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams defines query parameters for the trial balance report.
type TrialBalanceParams struct {
	AsOf     *time.Time `form:"asOf" time_format:"2006-01-02"`
	BranchID *string    `form:"branchID"`
}

// PeriodReportParams defines query parameters for period reports such as the
// profit and loss statement.
type PeriodReportParams struct {
	From     time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To       time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	BranchID *string   `form:"branchID"`
}

// TrialBalanceRowResponse is one account row of the trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Debit       decimal.Decimal    `json:"debit"`
	Credit      decimal.Decimal    `json:"credit"`
}

// TrialBalanceResponse is the full trial balance report.
type TrialBalanceResponse struct {
	AsOf        time.Time                 `json:"asOf"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
	IsBalanced  bool                      `json:"isBalanced"`
}

// AccountAmountResponse is an account with its computed report amount.
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse is the profit and loss statement for a period.
type ProfitAndLossResponse struct {
	PeriodStart   time.Time               `json:"periodStart"`
	PeriodEnd     time.Time               `json:"periodEnd"`
	Revenue       []AccountAmountResponse `json:"revenue"`
	TotalRevenue  decimal.Decimal         `json:"totalRevenue"`
	Expenses      []AccountAmountResponse `json:"expenses"`
	TotalExpenses decimal.Decimal         `json:"totalExpenses"`
	NetProfit     decimal.Decimal         `json:"netProfit"`
}

// BalanceSheetSectionResponse splits a section into current and non-current.
type BalanceSheetSectionResponse struct {
	Current    []AccountAmountResponse `json:"current"`
	NonCurrent []AccountAmountResponse `json:"nonCurrent"`
	Total      decimal.Decimal         `json:"total"`
}

// EquitySectionResponse lists equity lines including retained earnings.
type EquitySectionResponse struct {
	Accounts []AccountAmountResponse `json:"accounts"`
	Total    decimal.Decimal         `json:"total"`
}

// BalanceSheetResponse is the balance sheet as of a date.
type BalanceSheetResponse struct {
	AsOf        time.Time                   `json:"asOf"`
	Assets      BalanceSheetSectionResponse `json:"assets"`
	Liabilities BalanceSheetSectionResponse `json:"liabilities"`
	Equity      EquitySectionResponse       `json:"equity"`
	IsBalanced  bool                        `json:"isBalanced"`
}

func toAccountAmounts(rows []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(rows))
	for i, r := range rows {
		res[i] = AccountAmountResponse{AccountID: r.AccountID, Code: r.Code, Name: r.Name, Amount: r.Amount}
	}
	return res
}

// ToTrialBalanceResponse converts a domain.TrialBalance to a response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			Code:        r.Code,
			Name:        r.Name,
			AccountType: r.AccountType,
			Debit:       r.Debit,
			Credit:      r.Credit,
		}
	}
	return TrialBalanceResponse{
		AsOf:        tb.AsOf,
		Rows:        rows,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
		IsBalanced:  tb.IsBalanced,
	}
}

// ToProfitAndLossResponse converts a domain.ProfitAndLoss to a response DTO.
func ToProfitAndLossResponse(pl *domain.ProfitAndLoss) ProfitAndLossResponse {
	return ProfitAndLossResponse{
		PeriodStart:   pl.PeriodStart,
		PeriodEnd:     pl.PeriodEnd,
		Revenue:       toAccountAmounts(pl.Revenue),
		TotalRevenue:  pl.TotalRevenue,
		Expenses:      toAccountAmounts(pl.Expenses),
		TotalExpenses: pl.TotalExpenses,
		NetProfit:     pl.NetProfit,
	}
}

// ToBalanceSheetResponse converts a domain.BalanceSheet to a response DTO.
func ToBalanceSheetResponse(bs *domain.BalanceSheet) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf: bs.AsOf,
		Assets: BalanceSheetSectionResponse{
			Current:    toAccountAmounts(bs.Assets.Current),
			NonCurrent: toAccountAmounts(bs.Assets.NonCurrent),
			Total:      bs.Assets.Total,
		},
		Liabilities: BalanceSheetSectionResponse{
			Current:    toAccountAmounts(bs.Liabilities.Current),
			NonCurrent: toAccountAmounts(bs.Liabilities.NonCurrent),
			Total:      bs.Liabilities.Total,
		},
		Equity: EquitySectionResponse{
			Accounts: toAccountAmounts(bs.Equity.Accounts),
			Total:    bs.Equity.Total,
		},
		IsBalanced: bs.IsBalanced,
	}
}
