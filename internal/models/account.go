package models

import "github.com/shopspring/decimal"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a node in a tenant's chart of accounts.
// ParentAccountID uses string for the nullable self-reference; the repository
// maps empty to NULL.
type Account struct {
	AccountID       string          `db:"account_id"`
	TenantID        string          `db:"tenant_id"`
	BranchID        string          `db:"branch_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	ParentAccountID string          `db:"parent_account_id"` // Nullable
	Description     string          `db:"description"`
	OpeningBalance  decimal.Decimal `db:"opening_balance"`
	IsSystemAccount bool            `db:"is_system_account"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
