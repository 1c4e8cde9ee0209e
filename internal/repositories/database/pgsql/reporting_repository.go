package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nairabooks/ledger_backend/internal/apperrors"
	"github.com/nairabooks/ledger_backend/internal/core/domain"
	portsrepo "github.com/nairabooks/ledger_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report aggregates.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountActivity aggregates debits and credits per active account for
// entries dated on or before asOf. It runs in a repeatable-read read-only
// transaction so the totals of every account come from one snapshot; without
// that, a voucher committing mid-scan could appear on only one of its two
// sides and a balanced ledger would report as broken.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, tenantID string, branchID *string, asOf time.Time) ([]domain.AccountActivity, error) {
	tx, err := r.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.opening_balance,
		       COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM accounts a
		LEFT JOIN ledger_entries e
		  ON e.account_id = a.account_id
		 AND e.tenant_id = a.tenant_id
		 AND e.transaction_date <= $2
		WHERE a.tenant_id = $1 AND a.is_active = TRUE
	`
	args := []any{tenantID, asOf}
	if branchID != nil {
		args = append(args, *branchID)
		query += ` AND a.branch_id = $3`
	}
	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.opening_balance
		ORDER BY a.code ASC;
	`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account activity", err)
	}
	activities, err := collectActivities(rows)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetAccountActivityForPeriod aggregates debits and credits per account of
// the given types inside [start, end]. Opening balances are returned as zero
// so callers compute pure period movement.
func (r *PgxReportingRepository) GetAccountActivityForPeriod(ctx context.Context, tenantID string, branchID *string, start, end time.Time, types []domain.AccountType) ([]domain.AccountActivity, error) {
	tx, err := r.BeginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}

	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, 0,
		       COALESCE(SUM(e.debit), 0), COALESCE(SUM(e.credit), 0)
		FROM accounts a
		LEFT JOIN ledger_entries e
		  ON e.account_id = a.account_id
		 AND e.tenant_id = a.tenant_id
		 AND e.transaction_date >= $2
		 AND e.transaction_date <= $3
		WHERE a.tenant_id = $1 AND a.is_active = TRUE AND a.account_type = ANY($4)
	`
	args := []any{tenantID, start, end, typeNames}
	if branchID != nil {
		args = append(args, *branchID)
		query += ` AND a.branch_id = $5`
	}
	query += `
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code ASC;
	`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query period account activity", err)
	}
	activities, err := collectActivities(rows)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return activities, nil
}

func collectActivities(rows pgx.Rows) ([]domain.AccountActivity, error) {
	defer rows.Close()
	var activities []domain.AccountActivity
	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(
			&a.AccountID, &a.Code, &a.Name, &a.AccountType, &a.OpeningBalance,
			&a.TotalDebit, &a.TotalCredit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows", err)
	}
	return activities, nil
}
