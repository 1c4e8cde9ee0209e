package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
	"github.com/nairabooks/ledger_backend/internal/models"
	"github.com/nairabooks/ledger_backend/internal/utils/mapping"
)

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant and branch data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepository {
	return &PgxTenantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTenantRepository implements portsrepo.TenantRepository
var _ portsrepo.TenantRepository = (*PgxTenantRepository)(nil)

func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)
	query := `
		INSERT INTO tenants (
			tenant_id, name, is_active, vat_rate, pension_employee_rate, pension_employer_rate,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TenantID, m.Name, m.IsActive, m.VATRate, m.PensionEmployeeRate, m.PensionEmployerRate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert tenant "+m.TenantID, err)
	}
	return nil
}

func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `
		SELECT tenant_id, name, is_active, vat_rate, pension_employee_rate, pension_employer_rate,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM tenants
		WHERE tenant_id = $1;
	`
	var m models.Tenant
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&m.TenantID, &m.Name, &m.IsActive, &m.VATRate, &m.PensionEmployeeRate, &m.PensionEmployerRate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query tenant "+tenantID, err)
	}
	tenant := mapping.ToDomainTenant(m)
	return &tenant, nil
}

func (r *PgxTenantRepository) DeactivateTenant(ctx context.Context, tenantID, updatedBy string) error {
	query := `
		UPDATE tenants
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE tenant_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), updatedBy, tenantID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate tenant "+tenantID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTenantRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	m := mapping.ToModelBranch(branch)
	query := `
		INSERT INTO branches (
			branch_id, tenant_id, name, is_head_office, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BranchID, m.TenantID, m.Name, m.IsHeadOffice, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert branch "+m.BranchID, err)
	}
	return nil
}

func (r *PgxTenantRepository) FindBranchByID(ctx context.Context, tenantID, branchID string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, tenant_id, name, is_head_office, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM branches
		WHERE tenant_id = $1 AND branch_id = $2;
	`
	var m models.Branch
	err := r.Pool.QueryRow(ctx, query, tenantID, branchID).Scan(
		&m.BranchID, &m.TenantID, &m.Name, &m.IsHeadOffice, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query branch "+branchID, err)
	}
	branch := mapping.ToDomainBranch(m)
	return &branch, nil
}

func (r *PgxTenantRepository) ListBranches(ctx context.Context, tenantID string) ([]domain.Branch, error) {
	query := `
		SELECT branch_id, tenant_id, name, is_head_office, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM branches
		WHERE tenant_id = $1
		ORDER BY is_head_office DESC, name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query branches for tenant "+tenantID, err)
	}
	defer rows.Close()

	var ms []models.Branch
	for rows.Next() {
		var m models.Branch
		if err := rows.Scan(
			&m.BranchID, &m.TenantID, &m.Name, &m.IsHeadOffice, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan branch row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating branch rows", err)
	}
	return mapping.ToDomainBranchSlice(ms), nil
}
