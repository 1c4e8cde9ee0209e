package mapping

import (
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/nairabooks/ledger_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	parentID := ""
	if d.ParentAccountID != nil {
		parentID = *d.ParentAccountID
	}
	return models.Account{
		AccountID:       d.AccountID,
		TenantID:        d.TenantID,
		BranchID:        d.BranchID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		ParentAccountID: parentID,
		Description:     d.Description,
		OpeningBalance:  d.OpeningBalance,
		IsSystemAccount: d.IsSystemAccount,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	var parentID *string
	if m.ParentAccountID != "" {
		p := m.ParentAccountID
		parentID = &p
	}
	return domain.Account{
		AccountID:       m.AccountID,
		TenantID:        m.TenantID,
		BranchID:        m.BranchID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: parentID,
		Description:     m.Description,
		OpeningBalance:  m.OpeningBalance,
		IsSystemAccount: m.IsSystemAccount,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
