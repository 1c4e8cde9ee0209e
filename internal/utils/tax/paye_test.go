package tax_test

import (
	"testing"

	"github.com/nairabooks/ledger_backend/internal/utils/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculatePAYE_WorkedExample(t *testing.T) {
	// Monthly gross of 200,000 annualized: CRA = 200,000 + 1% of 2,400,000 =
	// 224,000; taxable = 2,176,000; band sum = 21,000 + 33,000 + 75,000 +
	// 95,000 + 120,960 = 344,960.
	res := tax.CalculatePAYE(dec("2400000"), decimal.Zero, decimal.Zero, decimal.Zero)

	assert.True(t, dec("224000").Equal(res.Relief), "relief = %s", res.Relief)
	assert.True(t, dec("2176000").Equal(res.TaxableIncome), "taxable = %s", res.TaxableIncome)
	assert.True(t, dec("344960").Equal(res.AnnualTax), "annual tax = %s", res.AnnualTax)
	assert.True(t, dec("28746.67").Equal(res.MonthlyTax), "monthly tax = %s", res.MonthlyTax)
	require.Len(t, res.Breakdown, 5)
	assert.True(t, dec("120960").Equal(res.Breakdown[4].Tax))
}

func TestCalculatePAYE_BandBoundary(t *testing.T) {
	// Gross 600,000: CRA = 206,000, taxable 394,000 falls across the first
	// two bands: 300,000 @ 7% + 94,000 @ 11% = 31,340.
	res := tax.CalculatePAYE(dec("600000"), decimal.Zero, decimal.Zero, decimal.Zero)

	assert.True(t, dec("394000").Equal(res.TaxableIncome))
	assert.True(t, dec("31340").Equal(res.AnnualTax), "annual tax = %s", res.AnnualTax)
	require.Len(t, res.Breakdown, 2)
	assert.True(t, dec("21000").Equal(res.Breakdown[0].Tax))
	assert.True(t, dec("10340").Equal(res.Breakdown[1].Tax))
}

func TestCalculatePAYE_ReliefExceedsIncome(t *testing.T) {
	res := tax.CalculatePAYE(dec("150000"), decimal.Zero, decimal.Zero, decimal.Zero)
	assert.True(t, res.AnnualTax.IsZero())
	assert.True(t, res.TaxableIncome.IsZero())
	assert.Empty(t, res.Breakdown)
}

func TestCalculatePAYE_ZeroAndNegativeGross(t *testing.T) {
	for _, gross := range []string{"0", "-1000"} {
		res := tax.CalculatePAYE(dec(gross), decimal.Zero, decimal.Zero, decimal.Zero)
		assert.True(t, res.AnnualTax.IsZero(), "gross %s", gross)
		assert.True(t, res.MonthlyTax.IsZero(), "gross %s", gross)
	}
}

func TestCalculatePAYE_PensionReducesTaxable(t *testing.T) {
	withPension := tax.CalculatePAYE(dec("2400000"), dec("192000"), decimal.Zero, decimal.Zero)
	withoutPension := tax.CalculatePAYE(dec("2400000"), decimal.Zero, decimal.Zero, decimal.Zero)

	assert.True(t, dec("1984000").Equal(withPension.TaxableIncome))
	assert.True(t, withPension.AnnualTax.LessThan(withoutPension.AnnualTax))
}

func TestCalculatePAYE_Monotonic(t *testing.T) {
	// Tax must be non-decreasing in gross income.
	grosses := []string{"0", "100000", "250000", "500000", "600000", "1000000",
		"1600000", "2400000", "3200000", "5000000", "10000000"}
	prev := decimal.Zero
	for _, g := range grosses {
		res := tax.CalculatePAYE(dec(g), decimal.Zero, decimal.Zero, decimal.Zero)
		assert.True(t, res.AnnualTax.GreaterThanOrEqual(prev), "tax decreased at gross %s", g)
		prev = res.AnnualTax
	}
}

func TestCalculateMonthlyPAYE(t *testing.T) {
	monthly := tax.CalculateMonthlyPAYE(dec("200000"), decimal.Zero)
	assert.True(t, dec("28746.67").Equal(monthly), "monthly = %s", monthly)

	// Monthly PAYE with pension relief must be below the no-relief figure and
	// strictly less than gross.
	withRelief := tax.CalculateMonthlyPAYE(dec("200000"), dec("16000"))
	assert.True(t, withRelief.LessThan(monthly))
	assert.True(t, withRelief.LessThan(dec("200000")))
	assert.True(t, withRelief.IsPositive())
}
