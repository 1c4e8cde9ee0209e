package dto

import (
	"time"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayItemInput is one named allowance or deduction line.
type PayItemInput struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateEmployeeRequest defines the data needed to register an employee.
type CreateEmployeeRequest struct {
	BranchID       string    `json:"branchID" binding:"required"`
	EmployeeNumber string    `json:"employeeNumber" binding:"required"`
	FullName       string    `json:"fullName" binding:"required"`
	Email          string    `json:"email" binding:"omitempty,email"`
	HireDate       time.Time `json:"hireDate" binding:"required" time_format:"2006-01-02"`
}

// UpsertPayrollConfigRequest defines an employee's recurring payroll terms.
type UpsertPayrollConfigRequest struct {
	GrossSalary         decimal.Decimal     `json:"grossSalary" binding:"required"`
	PayFrequency        domain.PayFrequency `json:"payFrequency" binding:"required,oneof=MONTHLY WEEKLY"`
	PensionEmployeeRate decimal.Decimal     `json:"pensionEmployeeRate"` // zero means tenant default
	PensionEmployerRate decimal.Decimal     `json:"pensionEmployerRate"`
	Allowances          []PayItemInput      `json:"allowances" binding:"omitempty,dive"`
	Deductions          []PayItemInput      `json:"deductions" binding:"omitempty,dive"`
}

// RunPayrollRequest computes payslips for a branch over one pay period.
type RunPayrollRequest struct {
	BranchID       string    `json:"branchID" binding:"required"`
	PayPeriodStart time.Time `json:"payPeriodStart" binding:"required" time_format:"2006-01-02"`
	PayPeriodEnd   time.Time `json:"payPeriodEnd" binding:"required" time_format:"2006-01-02"`
	PayDate        time.Time `json:"payDate" binding:"required" time_format:"2006-01-02"`

	// EmployeeIDs optionally restricts the run; empty means every active
	// employee of the branch.
	EmployeeIDs []string `json:"employeeIDs"`
}

// PostPayrollRequest posts one computed payslip to the ledger.
type PostPayrollRequest struct {
	PayslipID string `json:"payslipID" binding:"required"`
	BranchID  string `json:"branchID" binding:"required"`
}

// PayrollSummaryParams defines query parameters for the payroll summary.
type PayrollSummaryParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// PayslipPreviewParams defines query parameters for a dry-run payslip
// computation. Nothing is persisted.
type PayslipPreviewParams struct {
	PeriodStart time.Time `form:"periodStart" time_format:"2006-01-02" binding:"required"`
	PeriodEnd   time.Time `form:"periodEnd" time_format:"2006-01-02" binding:"required"`
	PayDate     time.Time `form:"payDate" time_format:"2006-01-02" binding:"required"`
}

// PayItemResponse mirrors PayItemInput on responses.
type PayItemResponse struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID     string     `json:"employeeID"`
	BranchID       string     `json:"branchID"`
	EmployeeNumber string     `json:"employeeNumber"`
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	HireDate       time.Time  `json:"hireDate"`
	TerminationDate *time.Time `json:"terminationDate,omitempty"`
	IsActive       bool       `json:"isActive"`
}

// PayrollConfigResponse defines the data returned for a payroll config.
type PayrollConfigResponse struct {
	ConfigID            string              `json:"configID"`
	EmployeeID          string              `json:"employeeID"`
	GrossSalary         decimal.Decimal     `json:"grossSalary"`
	PayFrequency        domain.PayFrequency `json:"payFrequency"`
	PensionEmployeeRate decimal.Decimal     `json:"pensionEmployeeRate"`
	PensionEmployerRate decimal.Decimal     `json:"pensionEmployerRate"`
	Allowances          []PayItemResponse   `json:"allowances,omitempty"`
	Deductions          []PayItemResponse   `json:"deductions,omitempty"`
}

// PayslipResponse defines the data returned for a computed payslip.
type PayslipResponse struct {
	PayslipID      string    `json:"payslipID"`
	EmployeeID     string    `json:"employeeID"`
	PayPeriodStart time.Time `json:"payPeriodStart"`
	PayPeriodEnd   time.Time `json:"payPeriodEnd"`
	PayDate        time.Time `json:"payDate"`

	GrossPay        decimal.Decimal `json:"grossPay"`
	TotalAllowances decimal.Decimal `json:"totalAllowances"`
	PAYEDeduction   decimal.Decimal `json:"payeDeduction"`
	PensionEmployee decimal.Decimal `json:"pensionEmployee"`
	PensionEmployer decimal.Decimal `json:"pensionEmployer"`
	OtherDeductions decimal.Decimal `json:"otherDeductions"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`

	Additions  []PayItemResponse `json:"additions,omitempty"`
	Deductions []PayItemResponse `json:"deductions,omitempty"`

	IsPosted bool       `json:"isPosted"`
	PostedAt *time.Time `json:"postedAt,omitempty"`
}

// PayrollSummaryResponse aggregates payslips over a pay-date window.
type PayrollSummaryResponse struct {
	PeriodStart          time.Time       `json:"periodStart"`
	PeriodEnd            time.Time       `json:"periodEnd"`
	PayslipCount         int             `json:"payslipCount"`
	TotalGross           decimal.Decimal `json:"totalGross"`
	TotalPAYE            decimal.Decimal `json:"totalPAYE"`
	TotalPensionEmployee decimal.Decimal `json:"totalPensionEmployee"`
	TotalPensionEmployer decimal.Decimal `json:"totalPensionEmployer"`
	TotalNet             decimal.Decimal `json:"totalNet"`
}

func toPayItemResponses(items []domain.PayItem) []PayItemResponse {
	if len(items) == 0 {
		return nil
	}
	res := make([]PayItemResponse, len(items))
	for i, it := range items {
		res[i] = PayItemResponse{Description: it.Description, Amount: it.Amount}
	}
	return res
}

// ToPayrollConfigResponse converts a domain.PayrollConfig to a response DTO.
func ToPayrollConfigResponse(cfg *domain.PayrollConfig) PayrollConfigResponse {
	return PayrollConfigResponse{
		ConfigID:            cfg.ConfigID,
		EmployeeID:          cfg.EmployeeID,
		GrossSalary:         cfg.GrossSalary,
		PayFrequency:        cfg.PayFrequency,
		PensionEmployeeRate: cfg.PensionEmployeeRate,
		PensionEmployerRate: cfg.PensionEmployerRate,
		Allowances:          toPayItemResponses(cfg.Allowances),
		Deductions:          toPayItemResponses(cfg.Deductions),
	}
}

// ToEmployeeResponse converts a domain.Employee to a response DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:      e.EmployeeID,
		BranchID:        e.BranchID,
		EmployeeNumber:  e.EmployeeNumber,
		FullName:        e.FullName,
		Email:           e.Email,
		HireDate:        e.HireDate,
		TerminationDate: e.TerminationDate,
		IsActive:        e.IsActive,
	}
}

// ToPayslipResponse converts a domain.Payslip to a response DTO.
func ToPayslipResponse(p *domain.Payslip) PayslipResponse {
	return PayslipResponse{
		PayslipID:       p.PayslipID,
		EmployeeID:      p.EmployeeID,
		PayPeriodStart:  p.PayPeriodStart,
		PayPeriodEnd:    p.PayPeriodEnd,
		PayDate:         p.PayDate,
		GrossPay:        p.GrossPay,
		TotalAllowances: p.TotalAllowances,
		PAYEDeduction:   p.PAYEDeduction,
		PensionEmployee: p.PensionEmployee,
		PensionEmployer: p.PensionEmployer,
		OtherDeductions: p.OtherDeductions,
		TotalDeductions: p.TotalDeductions,
		NetPay:          p.NetPay,
		Additions:       toPayItemResponses(p.Additions),
		Deductions:      toPayItemResponses(p.Deductions),
		IsPosted:        p.IsPosted,
		PostedAt:        p.PostedAt,
	}
}

// ToPayslipResponses converts a slice of payslips.
func ToPayslipResponses(payslips []domain.Payslip) []PayslipResponse {
	res := make([]PayslipResponse, len(payslips))
	for i := range payslips {
		res[i] = ToPayslipResponse(&payslips[i])
	}
	return res
}

// ToPayrollSummaryResponse converts a domain.PayrollSummary.
func ToPayrollSummaryResponse(s *domain.PayrollSummary) PayrollSummaryResponse {
	return PayrollSummaryResponse{
		PeriodStart:          s.PeriodStart,
		PeriodEnd:            s.PeriodEnd,
		PayslipCount:         s.PayslipCount,
		TotalGross:           s.TotalGross,
		TotalPAYE:            s.TotalPAYE,
		TotalPensionEmployee: s.TotalPensionEmployee,
		TotalPensionEmployer: s.TotalPensionEmployer,
		TotalNet:             s.TotalNet,
	}
}
