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

const employeeColumns = `
	employee_id, tenant_id, branch_id, employee_number, full_name, email, hire_date,
	termination_date, is_active, created_at, created_by, last_updated_at, last_updated_by
`

const payslipColumns = `
	payslip_id, tenant_id, employee_id, pay_period_start, pay_period_end, pay_date,
	gross_pay, total_allowances, paye_deduction, pension_employee, pension_employer,
	other_deductions, total_deductions, net_pay, additions, deductions,
	is_posted, posted_at, created_at
`

type PgxPayrollRepository struct {
	BaseRepository
}

// newPgxPayrollRepository creates a new repository for payroll data.
func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepository {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPayrollRepository implements portsrepo.PayrollRepository
var _ portsrepo.PayrollRepository = (*PgxPayrollRepository)(nil)

func scanEmployeeRow(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID, &m.TenantID, &m.BranchID, &m.EmployeeNumber, &m.FullName, &m.Email, &m.HireDate,
		&m.TerminationDate, &m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPayrollRepository) FindEmployeeByID(ctx context.Context, tenantID, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE tenant_id = $1 AND employee_id = $2;`
	m, err := scanEmployeeRow(r.Pool.QueryRow(ctx, query, tenantID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query employee "+employeeID, err)
	}
	employee := mapping.ToDomainEmployee(m)
	return &employee, nil
}

func (r *PgxPayrollRepository) ListActiveEmployees(ctx context.Context, tenantID, branchID string, employeeIDs []string) ([]domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE tenant_id = $1 AND branch_id = $2 AND is_active = TRUE
	`
	args := []any{tenantID, branchID}
	if len(employeeIDs) > 0 {
		args = append(args, employeeIDs)
		query += ` AND employee_id = ANY($3)`
	}
	query += ` ORDER BY employee_number ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list employees for branch "+branchID, err)
	}
	defer rows.Close()

	var ms []models.Employee
	for rows.Next() {
		m, err := scanEmployeeRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}
	return mapping.ToDomainEmployeeSlice(ms), nil
}

func (r *PgxPayrollRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID, m.TenantID, m.BranchID, m.EmployeeNumber, m.FullName, m.Email, m.HireDate,
		m.TerminationDate, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert employee "+m.EmployeeID, err)
	}
	return nil
}

// FindPayrollConfigByEmployeeID joins through employees so the lookup stays
// tenant-scoped; payroll_configs itself carries no tenant column.
func (r *PgxPayrollRepository) FindPayrollConfigByEmployeeID(ctx context.Context, tenantID, employeeID string) (*domain.PayrollConfig, error) {
	query := `
		SELECT c.config_id, c.employee_id, c.gross_salary, c.pay_frequency,
		       c.pension_employee_rate, c.pension_employer_rate, c.allowances, c.deductions,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM payroll_configs c
		JOIN employees e ON e.employee_id = c.employee_id
		WHERE e.tenant_id = $1 AND c.employee_id = $2;
	`
	var m models.PayrollConfig
	err := r.Pool.QueryRow(ctx, query, tenantID, employeeID).Scan(
		&m.ConfigID, &m.EmployeeID, &m.GrossSalary, &m.PayFrequency,
		&m.PensionEmployeeRate, &m.PensionEmployerRate, &m.Allowances, &m.Deductions,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query payroll config for employee "+employeeID, err)
	}
	config, err := mapping.ToDomainPayrollConfig(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode payroll config for employee "+employeeID, err)
	}
	return &config, nil
}

// SavePayrollConfig upserts on employee_id: each employee has at most one
// current config and a new one replaces it.
func (r *PgxPayrollRepository) SavePayrollConfig(ctx context.Context, config domain.PayrollConfig) error {
	m, err := mapping.ToModelPayrollConfig(config)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode payroll config", err)
	}
	query := `
		INSERT INTO payroll_configs (
			config_id, employee_id, gross_salary, pay_frequency,
			pension_employee_rate, pension_employer_rate, allowances, deductions,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (employee_id)
		DO UPDATE SET gross_salary = EXCLUDED.gross_salary,
		              pay_frequency = EXCLUDED.pay_frequency,
		              pension_employee_rate = EXCLUDED.pension_employee_rate,
		              pension_employer_rate = EXCLUDED.pension_employer_rate,
		              allowances = EXCLUDED.allowances,
		              deductions = EXCLUDED.deductions,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = r.Pool.Exec(ctx, query,
		m.ConfigID, m.EmployeeID, m.GrossSalary, m.PayFrequency,
		m.PensionEmployeeRate, m.PensionEmployerRate, m.Allowances, m.Deductions,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert payroll config for employee "+m.EmployeeID, err)
	}
	return nil
}

func (r *PgxPayrollRepository) SavePayslip(ctx context.Context, payslip domain.Payslip) error {
	m, err := mapping.ToModelPayslip(payslip)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode payslip", err)
	}
	query := `
		INSERT INTO payslips (` + payslipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.PayslipID, m.TenantID, m.EmployeeID, m.PayPeriodStart, m.PayPeriodEnd, m.PayDate,
		m.GrossPay, m.TotalAllowances, m.PAYEDeduction, m.PensionEmployee, m.PensionEmployer,
		m.OtherDeductions, m.TotalDeductions, m.NetPay, m.Additions, m.Deductions,
		m.IsPosted, m.PostedAt, m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert payslip "+m.PayslipID, err)
	}
	return nil
}

func scanPayslipRow(row pgx.Row) (models.Payslip, error) {
	var m models.Payslip
	err := row.Scan(
		&m.PayslipID, &m.TenantID, &m.EmployeeID, &m.PayPeriodStart, &m.PayPeriodEnd, &m.PayDate,
		&m.GrossPay, &m.TotalAllowances, &m.PAYEDeduction, &m.PensionEmployee, &m.PensionEmployer,
		&m.OtherDeductions, &m.TotalDeductions, &m.NetPay, &m.Additions, &m.Deductions,
		&m.IsPosted, &m.PostedAt, &m.CreatedAt,
	)
	return m, err
}

func (r *PgxPayrollRepository) FindPayslipByID(ctx context.Context, tenantID, payslipID string) (*domain.Payslip, error) {
	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE tenant_id = $1 AND payslip_id = $2;`
	m, err := scanPayslipRow(r.Pool.QueryRow(ctx, query, tenantID, payslipID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query payslip "+payslipID, err)
	}
	payslip, err := mapping.ToDomainPayslip(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode payslip "+payslipID, err)
	}
	return &payslip, nil
}

func (r *PgxPayrollRepository) FindPayslipForPeriod(ctx context.Context, tenantID, employeeID string, periodStart, periodEnd time.Time) (*domain.Payslip, error) {
	query := `
		SELECT ` + payslipColumns + `
		FROM payslips
		WHERE tenant_id = $1 AND employee_id = $2 AND pay_period_start = $3 AND pay_period_end = $4;
	`
	m, err := scanPayslipRow(r.Pool.QueryRow(ctx, query, tenantID, employeeID, periodStart, periodEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query payslip for period", err)
	}
	payslip, err := mapping.ToDomainPayslip(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode payslip for period", err)
	}
	return &payslip, nil
}

// MarkPayslipPosted only flips unposted payslips; a posted payslip is
// immutable and a second attempt reports conflict.
func (r *PgxPayrollRepository) MarkPayslipPosted(ctx context.Context, tenantID, payslipID string, postedAt time.Time) error {
	query := `
		UPDATE payslips
		SET is_posted = TRUE, posted_at = $1
		WHERE tenant_id = $2 AND payslip_id = $3 AND is_posted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, postedAt, tenantID, payslipID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark payslip posted "+payslipID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxPayrollRepository) SummarizePayslips(ctx context.Context, tenantID string, start, end time.Time) (*domain.PayrollSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(gross_pay), 0),
		       COALESCE(SUM(paye_deduction), 0),
		       COALESCE(SUM(pension_employee), 0),
		       COALESCE(SUM(pension_employer), 0),
		       COALESCE(SUM(net_pay), 0)
		FROM payslips
		WHERE tenant_id = $1 AND pay_date >= $2 AND pay_date <= $3;
	`
	summary := domain.PayrollSummary{PeriodStart: start, PeriodEnd: end}
	err := r.Pool.QueryRow(ctx, query, tenantID, start, end).Scan(
		&summary.PayslipCount,
		&summary.TotalGross,
		&summary.TotalPAYE,
		&summary.TotalPensionEmployee,
		&summary.TotalPensionEmployer,
		&summary.TotalNet,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to summarize payslips", err)
	}
	return &summary, nil
}
