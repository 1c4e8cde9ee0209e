package mapping

import (
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/nairabooks/ledger_backend/internal/models"
)

// ToModelTenant converts a domain Tenant to a model Tenant
func ToModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:            d.TenantID,
		Name:                d.Name,
		IsActive:            d.IsActive,
		VATRate:             d.VATRate,
		PensionEmployeeRate: d.PensionEmployeeRate,
		PensionEmployerRate: d.PensionEmployerRate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTenant converts a model Tenant to a domain Tenant
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:            m.TenantID,
		Name:                m.Name,
		IsActive:            m.IsActive,
		VATRate:             m.VATRate,
		PensionEmployeeRate: m.PensionEmployeeRate,
		PensionEmployerRate: m.PensionEmployerRate,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBranch converts a domain Branch to a model Branch
func ToModelBranch(d domain.Branch) models.Branch {
	return models.Branch{
		BranchID:     d.BranchID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		IsHeadOffice: d.IsHeadOffice,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBranch converts a model Branch to a domain Branch
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:     m.BranchID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		IsHeadOffice: m.IsHeadOffice,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranchSlice converts a slice of model Branches to a slice of domain Branches
func ToDomainBranchSlice(ms []models.Branch) []domain.Branch {
	ds := make([]domain.Branch, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBranch(m)
	}
	return ds
}
