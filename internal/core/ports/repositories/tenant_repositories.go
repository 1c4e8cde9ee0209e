package repositories

import (
	"context"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
)

// TenantRepository defines persistence for tenants and branches.
type TenantRepository interface {
	// SaveTenant persists a new tenant.
	SaveTenant(ctx context.Context, tenant domain.Tenant) error

	// FindTenantByID retrieves a tenant.
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// DeactivateTenant flags a tenant inactive. Tenants are never deleted.
	DeactivateTenant(ctx context.Context, tenantID, updatedBy string) error

	// SaveBranch persists a new branch.
	SaveBranch(ctx context.Context, branch domain.Branch) error

	// FindBranchByID retrieves a branch.
	FindBranchByID(ctx context.Context, tenantID, branchID string) (*domain.Branch, error)

	// ListBranches retrieves all branches of a tenant.
	ListBranches(ctx context.Context, tenantID string) ([]domain.Branch, error)
}
