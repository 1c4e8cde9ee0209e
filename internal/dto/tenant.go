package dto

import (
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTenantRequest provisions a new tenant with its head office branch and
// seeded chart of accounts.
type CreateTenantRequest struct {
	Name             string `json:"name" binding:"required"`
	HeadOfficeName   string `json:"headOfficeName"` // defaults to "Head Office"

	// Statutory overrides; zero means the national default.
	VATRate             decimal.Decimal `json:"vatRate"`
	PensionEmployeeRate decimal.Decimal `json:"pensionEmployeeRate"`
	PensionEmployerRate decimal.Decimal `json:"pensionEmployerRate"`
}

// CreateBranchRequest adds a branch to an existing tenant.
type CreateBranchRequest struct {
	Name string `json:"name" binding:"required"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID            string          `json:"tenantID"`
	Name                string          `json:"name"`
	IsActive            bool            `json:"isActive"`
	VATRate             decimal.Decimal `json:"vatRate"`
	PensionEmployeeRate decimal.Decimal `json:"pensionEmployeeRate"`
	PensionEmployerRate decimal.Decimal `json:"pensionEmployerRate"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// BranchResponse defines the data returned for a branch.
type BranchResponse struct {
	BranchID     string `json:"branchID"`
	TenantID     string `json:"tenantID"`
	Name         string `json:"name"`
	IsHeadOffice bool   `json:"isHeadOffice"`
	IsActive     bool   `json:"isActive"`
}

// ToTenantResponse converts a domain.Tenant to a response DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:            t.TenantID,
		Name:                t.Name,
		IsActive:            t.IsActive,
		VATRate:             t.VATRate,
		PensionEmployeeRate: t.PensionEmployeeRate,
		PensionEmployerRate: t.PensionEmployerRate,
		CreatedAt:           t.CreatedAt,
	}
}

// ToBranchResponse converts a domain.Branch to a response DTO.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:     b.BranchID,
		TenantID:     b.TenantID,
		Name:         b.Name,
		IsHeadOffice: b.IsHeadOffice,
		IsActive:     b.IsActive,
	}
}

// ToBranchResponses converts a slice of branches.
func ToBranchResponses(branches []domain.Branch) []BranchResponse {
	res := make([]BranchResponse, len(branches))
	for i := range branches {
		res[i] = ToBranchResponse(&branches[i])
	}
	return res
}
