package services

import (
	"context"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/nairabooks/ledger_backend/internal/dto"
)

// TenantSvcFacade defines tenant and branch provisioning
type TenantSvcFacade interface {
	// CreateTenant provisions a tenant with its head office branch and the
	// seeded default chart of accounts, all in one transaction.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)

	// GetTenantByID retrieves a tenant.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// DeactivateTenant marks a tenant inactive. Tenants are never deleted:
	// their ledger history must survive them.
	DeactivateTenant(ctx context.Context, tenantID string, requestingUserID string) error

	// CreateBranch adds a branch to an existing tenant.
	CreateBranch(ctx context.Context, tenantID string, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error)

	// ListBranches retrieves a tenant's branches.
	ListBranches(ctx context.Context, tenantID string) ([]domain.Branch, error)
}
