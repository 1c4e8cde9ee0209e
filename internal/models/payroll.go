package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the payroll subject.
type Employee struct {
	EmployeeID      string     `db:"employee_id"`
	TenantID        string     `db:"tenant_id"`
	BranchID        string     `db:"branch_id"`
	EmployeeNumber  string     `db:"employee_number"`
	FullName        string     `db:"full_name"`
	Email           string     `db:"email"`
	HireDate        time.Time  `db:"hire_date"`
	TerminationDate *time.Time `db:"termination_date"` // Nullable
	IsActive        bool       `db:"is_active"`
	AuditFields
}

// PayrollConfig holds an employee's recurring payroll parameters. Allowances
// and deductions are stored as JSONB arrays of {description, amount}.
type PayrollConfig struct {
	ConfigID            string          `db:"config_id"`
	EmployeeID          string          `db:"employee_id"`
	GrossSalary         decimal.Decimal `db:"gross_salary"`
	PayFrequency        string          `db:"pay_frequency"`
	PensionEmployeeRate decimal.Decimal `db:"pension_employee_rate"`
	PensionEmployerRate decimal.Decimal `db:"pension_employer_rate"`
	Allowances          []byte          `db:"allowances"` // JSONB
	Deductions          []byte          `db:"deductions"` // JSONB
	AuditFields
}

// Payslip is one computed pay period for one employee.
type Payslip struct {
	PayslipID       string          `db:"payslip_id"`
	TenantID        string          `db:"tenant_id"`
	EmployeeID      string          `db:"employee_id"`
	PayPeriodStart  time.Time       `db:"pay_period_start"`
	PayPeriodEnd    time.Time       `db:"pay_period_end"`
	PayDate         time.Time       `db:"pay_date"`
	GrossPay        decimal.Decimal `db:"gross_pay"`
	TotalAllowances decimal.Decimal `db:"total_allowances"`
	PAYEDeduction   decimal.Decimal `db:"paye_deduction"`
	PensionEmployee decimal.Decimal `db:"pension_employee"`
	PensionEmployer decimal.Decimal `db:"pension_employer"`
	OtherDeductions decimal.Decimal `db:"other_deductions"`
	TotalDeductions decimal.Decimal `db:"total_deductions"`
	NetPay          decimal.Decimal `db:"net_pay"`
	Additions       []byte          `db:"additions"`  // JSONB
	Deductions      []byte          `db:"deductions"` // JSONB
	IsPosted        bool            `db:"is_posted"`
	PostedAt        *time.Time      `db:"posted_at"` // Nullable
	CreatedAt       time.Time       `db:"created_at"`
}
