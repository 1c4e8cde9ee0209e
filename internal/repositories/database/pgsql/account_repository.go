package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
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

const accountColumns = `
	account_id, tenant_id, branch_id, code, name, account_type, parent_account_id,
	description, opening_balance, is_system_account, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// nullableString maps empty to NULL for optional foreign keys.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanAccountRow(row pgx.Row) (models.Account, error) {
	var m models.Account
	var parentID sql.NullString
	err := row.Scan(
		&m.AccountID, &m.TenantID, &m.BranchID, &m.Code, &m.Name, &m.AccountType, &parentID,
		&m.Description, &m.OpeningBalance, &m.IsSystemAccount, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	return m, nil
}

func (r *PgxAccountRepository) insertAccountTx(ctx context.Context, tx pgx.Tx, m models.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.AccountID, m.TenantID, m.BranchID, m.Code, m.Name, m.AccountType, nullableString(m.ParentAccountID),
		m.Description, m.OpeningBalance, m.IsSystemAccount, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The code constraint gets its own sentinel so the race with a
			// concurrent create surfaces the same way the pre-insert check does.
			if pgErr.ConstraintName == "accounts_tenant_id_code_key" {
				return fmt.Errorf("%w: code %s already in use", apperrors.ErrDuplicateCode, m.Code)
			}
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert account "+m.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertAccountTx(ctx, tx, mapping.ToModelAccount(account)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveAccounts inserts a batch of accounts in one transaction. Used when
// seeding the default chart: either the full chart lands or none of it does.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, account := range accounts {
		if err := r.insertAccountTx(ctx, tx, mapping.ToModelAccount(account)); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $1, parent_account_id = $2, description = $3, is_active = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $7 AND account_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name, nullableString(m.ParentAccountID), m.Description, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.AccountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, updatedBy string) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE tenant_id = $3 AND account_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), updatedBy, tenantID, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	query := `DELETE FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, tenantID, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503: another account still points at this one as parent.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query account "+accountID, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND code = $2;`
	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, tenantID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query account by code "+code, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, tenantID, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND name = $2;`
	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, tenantID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query account by name "+name, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) FindAccountsByType(ctx context.Context, tenantID string, accountType domain.AccountType) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_type = $2 AND is_active = TRUE
		ORDER BY code ASC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, string(accountType))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by type", err)
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1`
	args := []any{tenantID}
	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		query += ` AND branch_id = $` + strconv.Itoa(len(args))
	}
	if filter.AccountType != nil {
		args = append(args, string(*filter.AccountType))
		query += ` AND account_type = $` + strconv.Itoa(len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		query += ` AND is_active = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY code ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) HasLedgerActivity(ctx context.Context, tenantID, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE tenant_id = $1 AND account_id = $2);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check ledger activity for account "+accountID, err)
	}
	return exists, nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	var ms []models.Account
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}
