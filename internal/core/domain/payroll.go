package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayFrequency is how often an employee is paid.
type PayFrequency string

const (
	Monthly PayFrequency = "MONTHLY"
	Weekly  PayFrequency = "WEEKLY"
)

// Employee is the payroll subject. HR beyond payroll is out of scope.
type Employee struct {
	EmployeeID     string     `json:"employeeID"`
	TenantID       string     `json:"tenantID"`
	BranchID       string     `json:"branchID"`
	EmployeeNumber string     `json:"employeeNumber"`
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	HireDate       time.Time  `json:"hireDate"`
	TerminationDate *time.Time `json:"terminationDate,omitempty"`
	IsActive       bool       `json:"isActive"`
	AuditFields
}

// PayItem is a named addition or deduction on a payroll config or payslip.
type PayItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// PayrollConfig holds an employee's recurring payroll parameters.
type PayrollConfig struct {
	ConfigID     string          `json:"configID"`
	EmployeeID   string          `json:"employeeID"`
	GrossSalary  decimal.Decimal `json:"grossSalary"`
	PayFrequency PayFrequency    `json:"payFrequency"`

	// Optional per-employee statutory overrides; zero means "use tenant rate".
	PensionEmployeeRate decimal.Decimal `json:"pensionEmployeeRate"`
	PensionEmployerRate decimal.Decimal `json:"pensionEmployerRate"`

	Allowances []PayItem `json:"allowances,omitempty"`
	Deductions []PayItem `json:"deductions,omitempty"`
	AuditFields
}

// Payslip is one computed pay period for one employee. Once posted it owns
// exactly one journal voucher via the payslip source reference.
type Payslip struct {
	PayslipID      string    `json:"payslipID"`
	TenantID       string    `json:"tenantID"`
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

	Additions  []PayItem `json:"additions,omitempty"`
	Deductions []PayItem `json:"deductions,omitempty"`

	IsPosted bool       `json:"isPosted"`
	PostedAt *time.Time `json:"postedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// PayrollSummary aggregates payslips over a pay-date window.
type PayrollSummary struct {
	PeriodStart          time.Time       `json:"periodStart"`
	PeriodEnd            time.Time       `json:"periodEnd"`
	PayslipCount         int             `json:"payslipCount"`
	TotalGross           decimal.Decimal `json:"totalGross"`
	TotalPAYE            decimal.Decimal `json:"totalPAYE"`
	TotalPensionEmployee decimal.Decimal `json:"totalPensionEmployee"`
	TotalPensionEmployer decimal.Decimal `json:"totalPensionEmployer"`
	TotalNet             decimal.Decimal `json:"totalNet"`
}
