package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account in a trial balance. The balance
// sits in the column matching its natural side; a negative balance flips to
// the opposite column as an absolute value.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account balance at a point in time. IsBalanced
// false signals ledger corruption upstream and is surfaced, never swallowed.
type TrialBalance struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// AccountAmount is an account with a computed amount in a financial report.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLoss reports period movements of revenue and expense accounts.
type ProfitAndLoss struct {
	PeriodStart   time.Time       `json:"periodStart"`
	PeriodEnd     time.Time       `json:"periodEnd"`
	Revenue       []AccountAmount `json:"revenue"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// BalanceSheetSection splits accounts into current and non-current buckets.
type BalanceSheetSection struct {
	Current    []AccountAmount `json:"current"`
	NonCurrent []AccountAmount `json:"nonCurrent"`
	Total      decimal.Decimal `json:"total"`
}

// EquitySection lists equity accounts including the synthetic retained
// earnings line.
type EquitySection struct {
	Accounts []AccountAmount `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// BalanceSheet reports assets, liabilities and equity as of a date.
// IsBalanced checks totalAssets == totalLiabilities + totalEquity.
type BalanceSheet struct {
	AsOf        time.Time           `json:"asOf"`
	Assets      BalanceSheetSection `json:"assets"`
	Liabilities BalanceSheetSection `json:"liabilities"`
	Equity      EquitySection       `json:"equity"`
	IsBalanced  bool                `json:"isBalanced"`
}

// AccountActivity is the raw per-account aggregate a report is computed from:
// opening balance plus total debits and credits over the queried window.
type AccountActivity struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
}
