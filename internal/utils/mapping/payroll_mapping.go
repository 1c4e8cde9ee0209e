package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/nairabooks/ledger_backend/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:      d.EmployeeID,
		TenantID:        d.TenantID,
		BranchID:        d.BranchID,
		EmployeeNumber:  d.EmployeeNumber,
		FullName:        d.FullName,
		Email:           d.Email,
		HireDate:        d.HireDate,
		TerminationDate: d.TerminationDate,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:      m.EmployeeID,
		TenantID:        m.TenantID,
		BranchID:        m.BranchID,
		EmployeeNumber:  m.EmployeeNumber,
		FullName:        m.FullName,
		Email:           m.Email,
		HireDate:        m.HireDate,
		TerminationDate: m.TerminationDate,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEmployeeSlice converts a slice of model Employees to a slice of domain Employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	ds := make([]domain.Employee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEmployee(m)
	}
	return ds
}

// marshalPayItems serializes pay items for a JSONB column. A nil slice maps
// to an empty JSON array so the column stays non-null.
func marshalPayItems(items []domain.PayItem) ([]byte, error) {
	if items == nil {
		items = []domain.PayItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pay items: %w", err)
	}
	return raw, nil
}

func unmarshalPayItems(raw []byte) ([]domain.PayItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []domain.PayItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pay items: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

// ToModelPayrollConfig converts a domain PayrollConfig to a model PayrollConfig
func ToModelPayrollConfig(d domain.PayrollConfig) (models.PayrollConfig, error) {
	allowances, err := marshalPayItems(d.Allowances)
	if err != nil {
		return models.PayrollConfig{}, err
	}
	deductions, err := marshalPayItems(d.Deductions)
	if err != nil {
		return models.PayrollConfig{}, err
	}
	return models.PayrollConfig{
		ConfigID:            d.ConfigID,
		EmployeeID:          d.EmployeeID,
		GrossSalary:         d.GrossSalary,
		PayFrequency:        string(d.PayFrequency),
		PensionEmployeeRate: d.PensionEmployeeRate,
		PensionEmployerRate: d.PensionEmployerRate,
		Allowances:          allowances,
		Deductions:          deductions,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainPayrollConfig converts a model PayrollConfig to a domain PayrollConfig
func ToDomainPayrollConfig(m models.PayrollConfig) (domain.PayrollConfig, error) {
	allowances, err := unmarshalPayItems(m.Allowances)
	if err != nil {
		return domain.PayrollConfig{}, err
	}
	deductions, err := unmarshalPayItems(m.Deductions)
	if err != nil {
		return domain.PayrollConfig{}, err
	}
	return domain.PayrollConfig{
		ConfigID:            m.ConfigID,
		EmployeeID:          m.EmployeeID,
		GrossSalary:         m.GrossSalary,
		PayFrequency:        domain.PayFrequency(m.PayFrequency),
		PensionEmployeeRate: m.PensionEmployeeRate,
		PensionEmployerRate: m.PensionEmployerRate,
		Allowances:          allowances,
		Deductions:          deductions,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelPayslip converts a domain Payslip to a model Payslip
func ToModelPayslip(d domain.Payslip) (models.Payslip, error) {
	additions, err := marshalPayItems(d.Additions)
	if err != nil {
		return models.Payslip{}, err
	}
	deductions, err := marshalPayItems(d.Deductions)
	if err != nil {
		return models.Payslip{}, err
	}
	return models.Payslip{
		PayslipID:       d.PayslipID,
		TenantID:        d.TenantID,
		EmployeeID:      d.EmployeeID,
		PayPeriodStart:  d.PayPeriodStart,
		PayPeriodEnd:    d.PayPeriodEnd,
		PayDate:         d.PayDate,
		GrossPay:        d.GrossPay,
		TotalAllowances: d.TotalAllowances,
		PAYEDeduction:   d.PAYEDeduction,
		PensionEmployee: d.PensionEmployee,
		PensionEmployer: d.PensionEmployer,
		OtherDeductions: d.OtherDeductions,
		TotalDeductions: d.TotalDeductions,
		NetPay:          d.NetPay,
		Additions:       additions,
		Deductions:      deductions,
		IsPosted:        d.IsPosted,
		PostedAt:        d.PostedAt,
		CreatedAt:       d.CreatedAt,
	}, nil
}

// ToDomainPayslip converts a model Payslip to a domain Payslip
func ToDomainPayslip(m models.Payslip) (domain.Payslip, error) {
	additions, err := unmarshalPayItems(m.Additions)
	if err != nil {
		return domain.Payslip{}, err
	}
	deductions, err := unmarshalPayItems(m.Deductions)
	if err != nil {
		return domain.Payslip{}, err
	}
	return domain.Payslip{
		PayslipID:       m.PayslipID,
		TenantID:        m.TenantID,
		EmployeeID:      m.EmployeeID,
		PayPeriodStart:  m.PayPeriodStart,
		PayPeriodEnd:    m.PayPeriodEnd,
		PayDate:         m.PayDate,
		GrossPay:        m.GrossPay,
		TotalAllowances: m.TotalAllowances,
		PAYEDeduction:   m.PAYEDeduction,
		PensionEmployee: m.PensionEmployee,
		PensionEmployer: m.PensionEmployer,
		OtherDeductions: m.OtherDeductions,
		TotalDeductions: m.TotalDeductions,
		NetPay:          m.NetPay,
		Additions:       additions,
		Deductions:      deductions,
		IsPosted:        m.IsPosted,
		PostedAt:        m.PostedAt,
		CreatedAt:       m.CreatedAt,
	}, nil
}

// ToDomainPayslipSlice converts a slice of model Payslips to a slice of domain Payslips
func ToDomainPayslipSlice(ms []models.Payslip) ([]domain.Payslip, error) {
	ds := make([]domain.Payslip, len(ms))
	for i, m := range ms {
		d, err := ToDomainPayslip(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
