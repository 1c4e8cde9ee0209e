package tax

import "github.com/shopspring/decimal"

// Default Nigerian pension contribution rates. These are configuration
// defaults overridable per tenant, not hard constants.
var (
	DefaultPensionEmployeeRate = rate("0.08")
	DefaultPensionEmployerRate = rate("0.10")
)

// PensionContribution holds both sides of a pension calculation.
type PensionContribution struct {
	Employee decimal.Decimal `json:"employee"`
	Employer decimal.Decimal `json:"employer"`
}

// CalculatePension computes flat-percentage pension contributions on gross
// salary, with no caps. Zero or negative rates fall back to the defaults.
func CalculatePension(grossSalary, employeeRate, employerRate decimal.Decimal) PensionContribution {
	if employeeRate.LessThanOrEqual(decimal.Zero) {
		employeeRate = DefaultPensionEmployeeRate
	}
	if employerRate.LessThanOrEqual(decimal.Zero) {
		employerRate = DefaultPensionEmployerRate
	}
	if grossSalary.LessThanOrEqual(decimal.Zero) {
		return PensionContribution{Employee: decimal.Zero, Employer: decimal.Zero}
	}
	return PensionContribution{
		Employee: grossSalary.Mul(employeeRate).RoundBank(2),
		Employer: grossSalary.Mul(employerRate).RoundBank(2),
	}
}
