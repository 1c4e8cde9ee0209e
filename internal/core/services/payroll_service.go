package services

import (
	"context"
	"errors"
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

// payrollService computes statutory payslips and bridges them into the
// ledger. It never writes ledger entries itself; posting goes through the
// posting engine so payroll vouchers obey every posting invariant.
type payrollService struct {
	payrollRepo portsrepo.PayrollRepository
	tenantRepo  portsrepo.TenantRepository
	accountSvc  portssvc.AccountReaderSvc
	postingSvc  portssvc.PostingWriterSvc
}

// NewPayrollService creates a new PayrollService.
func NewPayrollService(payrollRepo portsrepo.PayrollRepository, tenantRepo portsrepo.TenantRepository, accountSvc portssvc.AccountReaderSvc, postingSvc portssvc.PostingWriterSvc) portssvc.PayrollSvcFacade {
	return &payrollService{
		payrollRepo: payrollRepo,
		tenantRepo:  tenantRepo,
		accountSvc:  accountSvc,
		postingSvc:  postingSvc,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

func periodsPerYear(freq domain.PayFrequency) decimal.Decimal {
	if freq == domain.Weekly {
		return decimal.NewFromInt(52)
	}
	return decimal.NewFromInt(12)
}

func sumPayItems(items []domain.PayItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

// ComputePayslip calculates one employee's payslip for a pay period without
// persisting anything. Statutory math works on annualized figures; the
// per-period tax is the annual tax divided by the pay frequency.
func (s *payrollService) ComputePayslip(ctx context.Context, tenantID string, employeeID string, periodStart, periodEnd, payDate time.Time) (*domain.Payslip, error) {
	employee, err := s.payrollRepo.FindEmployeeByID(ctx, tenantID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}
	if !employee.IsActive {
		return nil, fmt.Errorf("%w: employee %s is not active", apperrors.ErrValidation, employee.EmployeeNumber)
	}

	config, err := s.payrollRepo.FindPayrollConfigByEmployeeID(ctx, tenantID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll config for employee %s: %w", employeeID, err)
	}

	tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}

	employeeRate := config.PensionEmployeeRate
	if employeeRate.LessThanOrEqual(decimal.Zero) {
		employeeRate = tenant.PensionEmployeeRate
	}
	employerRate := config.PensionEmployerRate
	if employerRate.LessThanOrEqual(decimal.Zero) {
		employerRate = tenant.PensionEmployerRate
	}

	totalAllowances := sumPayItems(config.Allowances)
	otherDeductions := sumPayItems(config.Deductions)
	grossPay := config.GrossSalary.Add(totalAllowances)

	pension := tax.CalculatePension(grossPay, employeeRate, employerRate)

	periods := periodsPerYear(config.PayFrequency)
	annualGross := grossPay.Mul(periods)
	annualPension := pension.Employee.Mul(periods)
	payeResult := tax.CalculatePAYE(annualGross, annualPension, decimal.Zero, decimal.Zero)
	periodPAYE := payeResult.AnnualTax.Div(periods).RoundBank(2)

	totalDeductions := periodPAYE.Add(pension.Employee).Add(otherDeductions)
	netPay := grossPay.Sub(totalDeductions).RoundBank(2)

	now := time.Now().UTC()
	payslip := &domain.Payslip{
		PayslipID:       uuid.NewString(),
		TenantID:        tenantID,
		EmployeeID:      employeeID,
		PayPeriodStart:  periodStart,
		PayPeriodEnd:    periodEnd,
		PayDate:         payDate,
		GrossPay:        grossPay.RoundBank(2),
		TotalAllowances: totalAllowances.RoundBank(2),
		PAYEDeduction:   periodPAYE,
		PensionEmployee: pension.Employee,
		PensionEmployer: pension.Employer,
		OtherDeductions: otherDeductions.RoundBank(2),
		TotalDeductions: totalDeductions.RoundBank(2),
		NetPay:          netPay,
		Additions:       config.Allowances,
		Deductions:      config.Deductions,
		CreatedAt:       now,
	}
	return payslip, nil
}

// RunPayroll computes and stores payslips for a branch's active employees
// over one pay period. Employees with an existing payslip for the exact
// period are skipped, so reruns are safe.
func (s *payrollService) RunPayroll(ctx context.Context, tenantID string, req dto.RunPayrollRequest, requestingUserID string) ([]domain.Payslip, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PayPeriodEnd.Before(req.PayPeriodStart) {
		return nil, fmt.Errorf("%w: pay period end before start", apperrors.ErrValidation)
	}

	employees, err := s.payrollRepo.ListActiveEmployees(ctx, tenantID, req.BranchID, req.EmployeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	payslips := make([]domain.Payslip, 0, len(employees))
	for _, employee := range employees {
		existing, err := s.payrollRepo.FindPayslipForPeriod(ctx, tenantID, employee.EmployeeID, req.PayPeriodStart, req.PayPeriodEnd)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing payslip for %s: %w", employee.EmployeeID, err)
		}
		if existing != nil {
			logger.Info("Skipping employee with existing payslip for period",
				slog.String("employee_id", employee.EmployeeID),
				slog.String("payslip_id", existing.PayslipID),
			)
			continue
		}

		payslip, err := s.ComputePayslip(ctx, tenantID, employee.EmployeeID, req.PayPeriodStart, req.PayPeriodEnd, req.PayDate)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Skipping employee without payroll config", slog.String("employee_id", employee.EmployeeID))
				continue
			}
			return nil, err
		}

		if err := s.payrollRepo.SavePayslip(ctx, *payslip); err != nil {
			return nil, fmt.Errorf("failed to save payslip for %s: %w", employee.EmployeeID, err)
		}
		payslips = append(payslips, *payslip)
	}

	logger.Info("Payroll run completed",
		slog.String("branch_id", req.BranchID),
		slog.Int("payslips", len(payslips)),
	)
	return payslips, nil
}

// PostPayroll posts a computed payslip to the ledger as one balanced voucher
// and marks the payslip posted. The payslip is marked only after the voucher
// is committed, so a posting failure leaves it re-postable.
func (s *payrollService) PostPayroll(ctx context.Context, tenantID string, req dto.PostPayrollRequest, requestingUserID string) (*domain.JournalVoucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payslip, err := s.payrollRepo.FindPayslipByID(ctx, tenantID, req.PayslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payslip %s: %w", req.PayslipID, err)
	}
	if payslip.IsPosted {
		return nil, fmt.Errorf("%w: payslip %s is already posted", apperrors.ErrConflict, req.PayslipID)
	}

	employee, err := s.payrollRepo.FindEmployeeByID(ctx, tenantID, payslip.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", payslip.EmployeeID, err)
	}

	lines, err := s.buildPayrollLines(ctx, tenantID, payslip)
	if err != nil {
		return nil, err
	}

	posting := dto.CreatePostingRequest{
		BranchID:        req.BranchID,
		Lines:           lines,
		Description:     fmt.Sprintf("Payroll %s (%s to %s)", employee.FullName, payslip.PayPeriodStart.Format("2006-01-02"), payslip.PayPeriodEnd.Format("2006-01-02")),
		Reference:       employee.EmployeeNumber,
		TransactionDate: &payslip.PayDate,
		SourceType:      string(domain.SourcePayslip),
		SourceID:        payslip.PayslipID,
	}

	voucher, err := s.postingSvc.PostJournalEntry(ctx, tenantID, posting, requestingUserID)
	if err != nil {
		logger.Error("Failed to post payroll voucher", slog.String("error", err.Error()), slog.String("payslip_id", payslip.PayslipID))
		return nil, fmt.Errorf("failed to post payroll voucher: %w", err)
	}

	now := time.Now().UTC()
	if err := s.payrollRepo.MarkPayslipPosted(ctx, tenantID, payslip.PayslipID, now); err != nil {
		// The voucher exists; the payslip flag is the only thing left behind.
		logger.Error("Voucher posted but payslip not marked", slog.String("error", err.Error()), slog.String("payslip_id", payslip.PayslipID), slog.String("voucher_id", voucher.VoucherID))
		return nil, fmt.Errorf("voucher %s posted but payslip not marked: %w", voucher.VoucherNumber, err)
	}

	logger.Info("Payslip posted",
		slog.String("payslip_id", payslip.PayslipID),
		slog.String("voucher_number", voucher.VoucherNumber),
	)
	return voucher, nil
}

// buildPayrollLines assembles the posting lines for one payslip: gross pay
// debits the salary expense; PAYE, pension and other withholdings credit
// their liability accounts; net pay credits the bank.
func (s *payrollService) buildPayrollLines(ctx context.Context, tenantID string, payslip *domain.Payslip) ([]dto.PostingLine, error) {
	resolve := func(code string) (string, error) {
		acc, err := s.accountSvc.GetAccountByCode(ctx, tenantID, code)
		if err != nil {
			return "", fmt.Errorf("system account %s missing: %w", code, err)
		}
		return acc.AccountID, nil
	}

	salariesID, err := resolve(CodeSalariesWages)
	if err != nil {
		return nil, err
	}
	bankID, err := resolve(CodeBank)
	if err != nil {
		return nil, err
	}

	lines := []dto.PostingLine{
		{AccountID: salariesID, Debit: payslip.GrossPay, Description: "Gross pay"},
	}

	if payslip.PAYEDeduction.IsPositive() {
		payeID, err := resolve(CodePAYEPayable)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.PostingLine{AccountID: payeID, Credit: payslip.PAYEDeduction, Description: "PAYE withheld"})
	}
	if payslip.PensionEmployee.IsPositive() {
		pensionID, err := resolve(CodePensionPayable)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.PostingLine{AccountID: pensionID, Credit: payslip.PensionEmployee, Description: "Pension withheld"})
	}
	if payslip.OtherDeductions.IsPositive() {
		liabilitiesID, err := resolve("2300")
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.PostingLine{AccountID: liabilitiesID, Credit: payslip.OtherDeductions, Description: "Other withholdings"})
	}

	lines = append(lines, dto.PostingLine{AccountID: bankID, Credit: payslip.NetPay, Description: "Net pay"})
	return lines, nil
}

// GetPayrollSummary aggregates payslips over a pay-date window.
func (s *payrollService) GetPayrollSummary(ctx context.Context, tenantID string, params dto.PayrollSummaryParams) (*domain.PayrollSummary, error) {
	if params.To.Before(params.From) {
		return nil, fmt.Errorf("%w: summary end before start", apperrors.ErrValidation)
	}
	summary, err := s.payrollRepo.SummarizePayslips(ctx, tenantID, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize payslips: %w", err)
	}
	return summary, nil
}

// CreateEmployee registers a new employee.
func (s *payrollService) CreateEmployee(ctx context.Context, tenantID string, req dto.CreateEmployeeRequest, creatorUserID string) (*domain.Employee, error) {
	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID:     uuid.NewString(),
		TenantID:       tenantID,
		BranchID:       req.BranchID,
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		HireDate:       req.HireDate,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.payrollRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}
	return &employee, nil
}

// UpsertPayrollConfig sets an employee's recurring payroll terms.
func (s *payrollService) UpsertPayrollConfig(ctx context.Context, tenantID string, employeeID string, req dto.UpsertPayrollConfigRequest, requestingUserID string) (*domain.PayrollConfig, error) {
	if req.GrossSalary.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: gross salary must be positive", apperrors.ErrValidation)
	}
	if _, err := s.payrollRepo.FindEmployeeByID(ctx, tenantID, employeeID); err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}

	toPayItems := func(items []dto.PayItemInput) []domain.PayItem {
		if len(items) == 0 {
			return nil
		}
		res := make([]domain.PayItem, len(items))
		for i, it := range items {
			res[i] = domain.PayItem{Description: it.Description, Amount: it.Amount}
		}
		return res
	}

	now := time.Now().UTC()
	config := domain.PayrollConfig{
		ConfigID:            uuid.NewString(),
		EmployeeID:          employeeID,
		GrossSalary:         req.GrossSalary,
		PayFrequency:        req.PayFrequency,
		PensionEmployeeRate: req.PensionEmployeeRate,
		PensionEmployerRate: req.PensionEmployerRate,
		Allowances:          toPayItems(req.Allowances),
		Deductions:          toPayItems(req.Deductions),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.payrollRepo.SavePayrollConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save payroll config: %w", err)
	}
	return &config, nil
}

// GetPayslipByID retrieves a payslip.
func (s *payrollService) GetPayslipByID(ctx context.Context, tenantID string, payslipID string) (*domain.Payslip, error) {
	payslip, err := s.payrollRepo.FindPayslipByID(ctx, tenantID, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payslip %s: %w", payslipID, err)
	}
	return payslip, nil
}
