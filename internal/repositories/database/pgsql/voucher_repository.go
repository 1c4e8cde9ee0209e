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
	"github.com/shopspring/decimal"
)

// maxNumberRetries bounds how often a posting retries after losing a voucher
// number race to a concurrent transaction.
const maxNumberRetries = 3

const voucherColumns = `
	voucher_id, tenant_id, branch_id, voucher_number, transaction_date, description, reference,
	status, posted_at, original_voucher_id, reversing_voucher_id,
	created_at, created_by, last_updated_at, last_updated_by
`

const entryColumns = `
	entry_id, tenant_id, branch_id, account_id, voucher_id, transaction_date, description,
	debit, credit, source_type, source_id, is_reconciled, created_at
`

type PgxVoucherRepository struct {
	BaseRepository
}

// newPgxVoucherRepository creates a new repository for journal vouchers and
// ledger entries.
func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryFacade
var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

// nextVoucherNumber advances the per-tenant-per-month sequence inside tx and
// formats the voucher number. The upsert serializes concurrent callers on the
// sequence row, so two postings in the same month cannot draw the same value.
func (r *PgxVoucherRepository) nextVoucherNumber(ctx context.Context, tx pgx.Tx, tenantID string, txnDate time.Time) (string, error) {
	year, month := txnDate.Year(), int(txnDate.Month())
	query := `
		INSERT INTO voucher_sequences (tenant_id, year, month, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tenant_id, year, month)
		DO UPDATE SET last_value = voucher_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, tenantID, year, month).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to allocate voucher number", err)
	}
	return fmt.Sprintf("JV-%d-%02d-%05d", year, month, seq), nil
}

// isVoucherNumberCollision reports whether err is a lost race on the voucher
// number unique constraint, the only failure worth retrying.
func isVoucherNumberCollision(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "journal_vouchers_tenant_id_voucher_number_key"
}

// SaveVoucher persists the voucher and all its entries in one transaction.
// The voucher number is allocated inside the same transaction; if the unique
// constraint on voucher_number still trips, the whole attempt is retried.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.JournalVoucher, entries []domain.LedgerEntry) (*domain.JournalVoucher, error) {
	var lastErr error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		saved, err := r.saveVoucherOnce(ctx, voucher, entries)
		if err == nil {
			return saved, nil
		}
		if isVoucherNumberCollision(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", apperrors.ErrSequenceCollision, lastErr)
}

func (r *PgxVoucherRepository) saveVoucherOnce(ctx context.Context, voucher domain.JournalVoucher, entries []domain.LedgerEntry) (*domain.JournalVoucher, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	saved, err := r.insertVoucherTx(ctx, tx, voucher, entries)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// insertVoucherTx allocates the number and writes the voucher plus entries
// inside tx. Commit stays with the caller.
func (r *PgxVoucherRepository) insertVoucherTx(ctx context.Context, tx pgx.Tx, voucher domain.JournalVoucher, entries []domain.LedgerEntry) (*domain.JournalVoucher, error) {
	number, err := r.nextVoucherNumber(ctx, tx, voucher.TenantID, voucher.TransactionDate)
	if err != nil {
		return nil, err
	}
	voucher.VoucherNumber = number

	m := mapping.ToModelVoucher(voucher)
	voucherQuery := `
		INSERT INTO journal_vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, voucherQuery,
		m.VoucherID, m.TenantID, m.BranchID, m.VoucherNumber, m.TransactionDate, m.Description, m.Reference,
		m.Status, m.PostedAt, nullableString(m.OriginalVoucherID), nullableString(m.ReversingVoucherID),
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to insert voucher "+m.VoucherID, err)
	}

	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, entry := range entries {
		me := mapping.ToModelLedgerEntry(entry)
		batch.Queue(entryQuery,
			me.EntryID, me.TenantID, me.BranchID, me.AccountID, me.VoucherID, me.TransactionDate, me.Description,
			me.Debit, me.Credit, nullableString(me.SourceType), nullableString(me.SourceID), me.IsReconciled, me.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, apperrors.NewAppError(500, "failed to insert ledger entries for voucher "+m.VoucherID, err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to close ledger entry batch", err)
	}

	return &voucher, nil
}

// SaveReversal writes the reversal voucher and marks the original Reversed in
// one transaction. The status guard on the original means a concurrent or
// repeated reversal rolls the whole attempt back.
func (r *PgxVoucherRepository) SaveReversal(ctx context.Context, reversal domain.JournalVoucher, entries []domain.LedgerEntry, originalVoucherID string) (*domain.JournalVoucher, error) {
	var lastErr error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		saved, err := r.saveReversalOnce(ctx, reversal, entries, originalVoucherID)
		if err == nil {
			return saved, nil
		}
		if isVoucherNumberCollision(err) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: %v", apperrors.ErrSequenceCollision, lastErr)
}

func (r *PgxVoucherRepository) saveReversalOnce(ctx context.Context, reversal domain.JournalVoucher, entries []domain.LedgerEntry, originalVoucherID string) (*domain.JournalVoucher, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	saved, err := r.insertVoucherTx(ctx, tx, reversal, entries)
	if err != nil {
		return nil, err
	}

	markQuery := `
		UPDATE journal_vouchers
		SET status = $1, reversing_voucher_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE tenant_id = $5 AND voucher_id = $6 AND status = $7;
	`
	tag, err := tx.Exec(ctx, markQuery,
		string(domain.Reversed), saved.VoucherID, reversal.CreatedAt, reversal.CreatedBy,
		reversal.TenantID, originalVoucherID, string(domain.Posted),
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark voucher reversed "+originalVoucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: voucher %s is not in posted status", apperrors.ErrConflict, originalVoucherID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

func scanVoucherRow(row pgx.Row) (models.JournalVoucher, error) {
	var m models.JournalVoucher
	var originalID, reversingID sql.NullString
	err := row.Scan(
		&m.VoucherID, &m.TenantID, &m.BranchID, &m.VoucherNumber, &m.TransactionDate, &m.Description, &m.Reference,
		&m.Status, &m.PostedAt, &originalID, &reversingID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalVoucher{}, err
	}
	if originalID.Valid {
		m.OriginalVoucherID = originalID.String
	}
	if reversingID.Valid {
		m.ReversingVoucherID = reversingID.String
	}
	return m, nil
}

func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, tenantID, voucherID string) (*domain.JournalVoucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM journal_vouchers WHERE tenant_id = $1 AND voucher_id = $2;`
	m, err := scanVoucherRow(r.Pool.QueryRow(ctx, query, tenantID, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query voucher "+voucherID, err)
	}
	voucher := mapping.ToDomainVoucher(m)
	return &voucher, nil
}

func (r *PgxVoucherRepository) FindEntriesByVoucherID(ctx context.Context, tenantID, voucherID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE tenant_id = $1 AND voucher_id = $2
		ORDER BY debit DESC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, voucherID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for voucher "+voucherID, err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, tenantID string, branchID *string, limit, offset int) ([]domain.JournalVoucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM journal_vouchers WHERE tenant_id = $1`
	args := []any{tenantID}
	if branchID != nil {
		args = append(args, *branchID)
		query += ` AND branch_id = $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY posted_at DESC, voucher_number DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list vouchers", err)
	}
	defer rows.Close()

	var ms []models.JournalVoucher
	for rows.Next() {
		m, err := scanVoucherRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan voucher row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating voucher rows", err)
	}
	return mapping.ToDomainVoucherSlice(ms), nil
}

func (r *PgxVoucherRepository) ListEntriesByAccount(ctx context.Context, tenantID, accountID string, from, to *time.Time, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE tenant_id = $1 AND account_id = $2`
	args := []any{tenantID, accountID}
	if from != nil {
		args = append(args, *from)
		query += ` AND transaction_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND transaction_date <= $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY transaction_date ASC, created_at ASC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list entries for account "+accountID, err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *PgxVoucherRepository) GetAccountTotals(ctx context.Context, tenantID, accountID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = $2
	`
	args := []any{tenantID, accountID}
	if asOf != nil {
		args = append(args, *asOf)
		query += ` AND transaction_date <= $3`
	}
	query += `;`

	var totalDebit, totalCredit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&totalDebit, &totalCredit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum ledger entries for account "+accountID, err)
	}
	return totalDebit, totalCredit, nil
}

func (r *PgxVoucherRepository) GetAccountTotalsForPeriod(ctx context.Context, tenantID, accountID string, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger_entries
		WHERE tenant_id = $1 AND account_id = $2 AND transaction_date >= $3 AND transaction_date <= $4;
	`
	var totalDebit, totalCredit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID, start, end).Scan(&totalDebit, &totalCredit); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum period ledger entries for account "+accountID, err)
	}
	return totalDebit, totalCredit, nil
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var ms []models.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		var sourceType, sourceID sql.NullString
		if err := rows.Scan(
			&m.EntryID, &m.TenantID, &m.BranchID, &m.AccountID, &m.VoucherID, &m.TransactionDate, &m.Description,
			&m.Debit, &m.Credit, &sourceType, &sourceID, &m.IsReconciled, &m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		if sourceType.Valid {
			m.SourceType = sourceType.String
		}
		if sourceID.Valid {
			m.SourceID = sourceID.String
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(ms), nil
}
