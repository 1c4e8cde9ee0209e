package services

import (
	"context"
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/nairabooks/ledger_backend/internal/dto"
)

// PayrollCalculatorSvc defines the pure payslip computation
type PayrollCalculatorSvc interface {
	// ComputePayslip calculates one employee's payslip for a pay period
	// without persisting anything.
	ComputePayslip(ctx context.Context, tenantID string, employeeID string, periodStart, periodEnd, payDate time.Time) (*domain.Payslip, error)
}

// PayrollRunnerSvc defines the payroll run lifecycle
type PayrollRunnerSvc interface {
	// RunPayroll computes and stores payslips for a branch's active employees
	// over one pay period. Employees who already have a payslip for the exact
	// period are skipped.
	RunPayroll(ctx context.Context, tenantID string, req dto.RunPayrollRequest, requestingUserID string) ([]domain.Payslip, error)

	// PostPayroll posts a computed payslip to the ledger as a balanced voucher
	// and marks the payslip posted. Posting the same payslip twice is refused.
	PostPayroll(ctx context.Context, tenantID string, req dto.PostPayrollRequest, requestingUserID string) (*domain.JournalVoucher, error)

	// GetPayrollSummary aggregates payslips over a pay-date window.
	GetPayrollSummary(ctx context.Context, tenantID string, params dto.PayrollSummaryParams) (*domain.PayrollSummary, error)
}

// EmployeeSvc defines employee and payroll-config management
type EmployeeSvc interface {
	// CreateEmployee registers a new employee.
	CreateEmployee(ctx context.Context, tenantID string, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error)

	// UpsertPayrollConfig sets an employee's recurring payroll terms.
	UpsertPayrollConfig(ctx context.Context, tenantID string, employeeID string, req dto.UpsertPayrollConfigRequest, requestingUserID string) (*domain.PayrollConfig, error)

	// GetPayslipByID retrieves a payslip.
	GetPayslipByID(ctx context.Context, tenantID string, payslipID string) (*domain.Payslip, error)
}

// PayrollSvcFacade combines all payroll-related service interfaces
type PayrollSvcFacade interface {
	PayrollCalculatorSvc
	PayrollRunnerSvc
	EmployeeSvc
}
