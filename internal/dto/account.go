package dto

import (
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	BranchID        string             `json:"branchID" binding:"required"`
	Code            string             `json:"code" binding:"required,accountcode"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"` // optional, use pointer for nullability
	Description     string             `json:"description"`     // optional
	OpeningBalance  decimal.Decimal    `json:"openingBalance"`  // optional, defaults to zero
}

// UpdateAccountRequest defines the data allowed for updating an account.
// AccountType is deliberately absent: type is immutable after creation.
type UpdateAccountRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	ParentAccountID *string `json:"parentAccountID"`
	IsActive        *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	BranchID        string             `json:"branchID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID *string            `json:"parentAccountID,omitempty"`
	Description     string             `json:"description"`
	OpeningBalance  decimal.Decimal    `json:"openingBalance"`
	IsSystemAccount bool               `json:"isSystemAccount"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// AccountWithBalance pairs an account with its live balance, for the grouped
// chart-of-accounts view.
type AccountWithBalance struct {
	AccountResponse
	Balance decimal.Decimal `json:"balance"`
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      *string         `json:"asOf,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	BranchID    *string             `form:"branchID"`
	AccountType *domain.AccountType `form:"type"`
	IsActive    *bool               `form:"isActive"`
}

// BalanceParams defines query parameters for a point-in-time balance.
type BalanceParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// PeriodBalanceParams defines query parameters for a period movement.
type PeriodBalanceParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// ToAccountResponse converts a domain.Account to an AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		BranchID:        acc.BranchID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		OpeningBalance:  acc.OpeningBalance,
		IsSystemAccount: acc.IsSystemAccount,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
