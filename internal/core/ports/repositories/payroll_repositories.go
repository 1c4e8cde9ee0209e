package repositories

import (
	"context"
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
)

// PayrollRepository defines persistence for employees, payroll configs and
// payslips.
type PayrollRepository interface {
	// FindEmployeeByID retrieves an employee.
	FindEmployeeByID(ctx context.Context, tenantID, employeeID string) (*domain.Employee, error)

	// ListActiveEmployees retrieves active employees of a branch, optionally
	// restricted to specific IDs.
	ListActiveEmployees(ctx context.Context, tenantID, branchID string, employeeIDs []string) ([]domain.Employee, error)

	// FindPayrollConfigByEmployeeID retrieves an employee's payroll config.
	FindPayrollConfigByEmployeeID(ctx context.Context, tenantID, employeeID string) (*domain.PayrollConfig, error)

	// SaveEmployee persists a new employee.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// SavePayrollConfig persists or replaces an employee's payroll config.
	SavePayrollConfig(ctx context.Context, config domain.PayrollConfig) error

	// SavePayslip persists a computed payslip with its additions/deductions.
	SavePayslip(ctx context.Context, payslip domain.Payslip) error

	// FindPayslipByID retrieves a payslip.
	FindPayslipByID(ctx context.Context, tenantID, payslipID string) (*domain.Payslip, error)

	// FindPayslipForPeriod retrieves an employee's payslip for an exact pay
	// period, if one exists.
	FindPayslipForPeriod(ctx context.Context, tenantID, employeeID string, periodStart, periodEnd time.Time) (*domain.Payslip, error)

	// MarkPayslipPosted flags a payslip as posted after its voucher is written.
	MarkPayslipPosted(ctx context.Context, tenantID, payslipID string, postedAt time.Time) error

	// SummarizePayslips aggregates payslips by pay date window.
	SummarizePayslips(ctx context.Context, tenantID string, start, end time.Time) (*domain.PayrollSummary, error)
}
