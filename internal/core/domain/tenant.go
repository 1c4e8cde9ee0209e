package domain

import "github.com/shopspring/decimal"

// Tenant is the top-level isolation boundary. Every other entity carries a
// TenantID; cross-tenant references are a correctness violation, not just an
// access-control one. Tenants are never deleted, only deactivated.
type Tenant struct {
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`

	// Statutory configuration. Defaults come from application config and may
	// be overridden per tenant.
	VATRate             decimal.Decimal `json:"vatRate"`
	PensionEmployeeRate decimal.Decimal `json:"pensionEmployeeRate"`
	PensionEmployerRate decimal.Decimal `json:"pensionEmployerRate"`

	AuditFields
}

// Branch is a sub-scope within a tenant (multi-location). Exactly one branch
// per tenant is flagged as the head office / default branch.
type Branch struct {
	BranchID   string `json:"branchID"`
	TenantID   string `json:"tenantID"`
	Name       string `json:"name"`
	IsHeadOffice bool `json:"isHeadOffice"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
