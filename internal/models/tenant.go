package models

import "github.com/shopspring/decimal"

// Tenant represents one business on the platform. Statutory rates are stored
// per tenant so national defaults can be overridden.
type Tenant struct {
	TenantID            string          `db:"tenant_id"`
	Name                string          `db:"name"`
	IsActive            bool            `db:"is_active"`
	VATRate             decimal.Decimal `db:"vat_rate"`
	PensionEmployeeRate decimal.Decimal `db:"pension_employee_rate"`
	PensionEmployerRate decimal.Decimal `db:"pension_employer_rate"`
	AuditFields
}

// Branch represents a physical or logical subdivision of a tenant.
type Branch struct {
	BranchID     string `db:"branch_id"`
	TenantID     string `db:"tenant_id"`
	Name         string `db:"name"`
	IsHeadOffice bool   `db:"is_head_office"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
