package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
// It is immutable after creation: changing it would invalidate the sign
// convention of every historical posting against the account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a node in the chart of accounts.
type Account struct {
	AccountID       string          `json:"accountID"`
	TenantID        string          `json:"tenantID"`
	BranchID        string          `json:"branchID"`
	Code            string          `json:"code"` // unique within tenant; drives sort order and classification
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	ParentAccountID *string         `json:"parentAccountID"` // nullable self-reference, forms a tree
	Description     string          `json:"description"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"` // signed, interpreted per AccountType
	IsSystemAccount bool            `json:"isSystemAccount"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// AccountFilter narrows account listings. Nil fields are not filtered on.
type AccountFilter struct {
	BranchID    *string
	AccountType *AccountType
	IsActive    *bool
}
