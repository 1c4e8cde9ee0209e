package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/nairabooks/ledger_backend/internal/core/ports/services"
	"github.com/nairabooks/ledger_backend/internal/dto"
	"github.com/nairabooks/ledger_backend/internal/middleware"
	"github.com/nairabooks/ledger_backend/internal/utils/tax"
)

// tenantService provisions tenants with their head office branch and the
// seeded default chart of accounts.
type tenantService struct {
	tenantRepo portsrepo.TenantRepository
	accountSvc portssvc.AccountWriterSvc
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepository, accountSvc portssvc.AccountWriterSvc) portssvc.TenantSvcFacade {
	return &tenantService{
		tenantRepo: tenantRepo,
		accountSvc: accountSvc,
	}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// CreateTenant provisions a tenant, its head office branch and the default
// chart of accounts.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	vatRate := req.VATRate
	if vatRate.LessThanOrEqual(decimal.Zero) {
		vatRate = tax.DefaultVATRate
	}
	pensionEmployee := req.PensionEmployeeRate
	if pensionEmployee.LessThanOrEqual(decimal.Zero) {
		pensionEmployee = tax.DefaultPensionEmployeeRate
	}
	pensionEmployer := req.PensionEmployerRate
	if pensionEmployer.LessThanOrEqual(decimal.Zero) {
		pensionEmployer = tax.DefaultPensionEmployerRate
	}

	tenant := domain.Tenant{
		TenantID:            uuid.NewString(),
		Name:                req.Name,
		IsActive:            true,
		VATRate:             vatRate,
		PensionEmployeeRate: pensionEmployee,
		PensionEmployerRate: pensionEmployer,
		AuditFields:         audit,
	}
	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	branchName := req.HeadOfficeName
	if branchName == "" {
		branchName = "Head Office"
	}
	branch := domain.Branch{
		BranchID:     uuid.NewString(),
		TenantID:     tenant.TenantID,
		Name:         branchName,
		IsHeadOffice: true,
		IsActive:     true,
		AuditFields:  audit,
	}
	if err := s.tenantRepo.SaveBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to save head office branch: %w", err)
	}

	if err := s.accountSvc.SeedDefaultAccounts(ctx, tenant.TenantID, branch.BranchID, creatorUserID); err != nil {
		return nil, fmt.Errorf("failed to seed chart of accounts: %w", err)
	}

	logger.Info("Tenant provisioned",
		slog.String("tenant_id", tenant.TenantID),
		slog.String("branch_id", branch.BranchID),
	)
	return &tenant, nil
}

// GetTenantByID retrieves a tenant.
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}
	return tenant, nil
}

// DeactivateTenant marks a tenant inactive, keeping its ledger history.
func (s *tenantService) DeactivateTenant(ctx context.Context, tenantID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.tenantRepo.DeactivateTenant(ctx, tenantID, requestingUserID); err != nil {
		return fmt.Errorf("failed to deactivate tenant %s: %w", tenantID, err)
	}

	logger.Info("Tenant deactivated", slog.String("tenant_id", tenantID))
	return nil
}

// CreateBranch adds a branch to an existing tenant.
func (s *tenantService) CreateBranch(ctx context.Context, tenantID string, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error) {
	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tenant %s: %w", tenantID, err)
	}
	if !tenant.IsActive {
		return nil, fmt.Errorf("%w: tenant is inactive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	branch := domain.Branch{
		BranchID:     uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		IsHeadOffice: false,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.tenantRepo.SaveBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to save branch: %w", err)
	}
	return &branch, nil
}

// ListBranches retrieves a tenant's branches.
func (s *tenantService) ListBranches(ctx context.Context, tenantID string) ([]domain.Branch, error) {
	branches, err := s.tenantRepo.ListBranches(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}
