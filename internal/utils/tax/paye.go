// Package tax implements the Nigerian statutory calculations used by
// payroll: PAYE income tax, pension contributions and VAT. Everything here
// is pure and stateless; amounts are decimals and user-facing figures are
// rounded to two places with banker's rounding at the point of output.
package tax

import (
	"github.com/shopspring/decimal"
)

// Band is one progressive PAYE band. Upper is nil for the open-ended top band.
type Band struct {
	Lower decimal.Decimal
	Upper *decimal.Decimal // nil means unbounded
	Rate  decimal.Decimal
}

// payeBands is the 2024 Nigerian PAYE table, applied in order to taxable
// income after relief.
var payeBands = []Band{
	{Lower: d(0), Upper: dp(300000), Rate: rate("0.07")},
	{Lower: d(300000), Upper: dp(600000), Rate: rate("0.11")},
	{Lower: d(600000), Upper: dp(1100000), Rate: rate("0.15")},
	{Lower: d(1100000), Upper: dp(1600000), Rate: rate("0.19")},
	{Lower: d(1600000), Upper: dp(3200000), Rate: rate("0.21")},
	{Lower: d(3200000), Upper: nil, Rate: rate("0.24")},
}

// craFlat is the flat component of the consolidated relief allowance.
var craFlat = d(200000)

// craGrossPct is the gross-income component of the CRA (1%).
var craGrossPct = rate("0.01")

func d(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func dp(i int64) *decimal.Decimal {
	v := decimal.NewFromInt(i)
	return &v
}

func rate(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// BandTax is the tax contributed by one band, for the breakdown.
type BandTax struct {
	Lower   decimal.Decimal  `json:"lower"`
	Upper   *decimal.Decimal `json:"upper,omitempty"`
	Rate    decimal.Decimal  `json:"rate"`
	Taxable decimal.Decimal  `json:"taxable"`
	Tax     decimal.Decimal  `json:"tax"`
}

// PAYEResult holds the outcome of a PAYE calculation on annual figures.
type PAYEResult struct {
	Relief        decimal.Decimal `json:"relief"`        // consolidated relief allowance
	TaxableIncome decimal.Decimal `json:"taxableIncome"` // after relief and deductions
	AnnualTax     decimal.Decimal `json:"annualTax"`
	MonthlyTax    decimal.Decimal `json:"monthlyTax"`
	Breakdown     []BandTax       `json:"breakdown"`
}

// CalculatePAYE computes Nigerian PAYE on an annual gross income.
// The consolidated relief allowance is 200,000 plus 1% of gross; pension
// contributions, allowances and other deductions further reduce taxable
// income. The progressive band table is then applied in order. Intermediate
// arithmetic is unrounded; the returned tax figures are rounded to two
// places.
func CalculatePAYE(annualGross, pensionContribution, otherDeductions, allowances decimal.Decimal) PAYEResult {
	res := PAYEResult{
		Relief:        decimal.Zero,
		TaxableIncome: decimal.Zero,
		AnnualTax:     decimal.Zero,
		MonthlyTax:    decimal.Zero,
	}
	if annualGross.LessThanOrEqual(decimal.Zero) {
		return res
	}

	onePct := annualGross.Mul(craGrossPct)
	cra := craFlat.Add(onePct)
	if onePct.GreaterThan(cra) {
		cra = onePct
	}
	res.Relief = cra

	taxable := annualGross.Sub(cra).Sub(pensionContribution).Sub(allowances).Sub(otherDeductions)
	if taxable.LessThanOrEqual(decimal.Zero) {
		return res
	}
	res.TaxableIncome = taxable

	tax := decimal.Zero
	remaining := taxable
	for _, band := range payeBands {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		taxableInBand := remaining
		if band.Upper != nil {
			width := band.Upper.Sub(band.Lower)
			if taxableInBand.GreaterThan(width) {
				taxableInBand = width
			}
		}
		bandTax := taxableInBand.Mul(band.Rate)
		tax = tax.Add(bandTax)
		remaining = remaining.Sub(taxableInBand)

		res.Breakdown = append(res.Breakdown, BandTax{
			Lower:   band.Lower,
			Upper:   band.Upper,
			Rate:    band.Rate,
			Taxable: taxableInBand,
			Tax:     bandTax.RoundBank(2),
		})
	}

	res.AnnualTax = tax.RoundBank(2)
	res.MonthlyTax = tax.Div(decimal.NewFromInt(12)).RoundBank(2)
	return res
}

// CalculateMonthlyPAYE annualizes a monthly gross (and monthly pension
// relief) and returns the monthly tax figure.
func CalculateMonthlyPAYE(monthlyGross, monthlyPension decimal.Decimal) decimal.Decimal {
	twelve := decimal.NewFromInt(12)
	result := CalculatePAYE(monthlyGross.Mul(twelve), monthlyPension.Mul(twelve), decimal.Zero, decimal.Zero)
	return result.MonthlyTax
}
