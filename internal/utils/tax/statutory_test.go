package tax_test

import (
	"testing"

	"github.com/nairabooks/ledger_backend/internal/utils/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculatePension(t *testing.T) {
	contrib := tax.CalculatePension(dec("200000"), decimal.Zero, decimal.Zero)
	assert.True(t, dec("16000").Equal(contrib.Employee), "employee = %s", contrib.Employee)
	assert.True(t, dec("20000").Equal(contrib.Employer), "employer = %s", contrib.Employer)
}

func TestCalculatePension_CustomRates(t *testing.T) {
	contrib := tax.CalculatePension(dec("100000"), dec("0.05"), dec("0.12"))
	assert.True(t, dec("5000").Equal(contrib.Employee))
	assert.True(t, dec("12000").Equal(contrib.Employer))
}

func TestCalculatePension_ZeroGross(t *testing.T) {
	contrib := tax.CalculatePension(decimal.Zero, decimal.Zero, decimal.Zero)
	assert.True(t, contrib.Employee.IsZero())
	assert.True(t, contrib.Employer.IsZero())
}

func TestCalculateVAT(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		rate      string
		inclusive bool
		want      string
	}{
		{"exclusive default rate", "1000", "0", false, "75"},
		{"inclusive extracts vat", "1075", "0", true, "75"},
		{"exclusive custom rate", "2000", "0.05", false, "100"},
		{"zero amount", "0", "0", false, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tax.CalculateVAT(dec(tt.amount), dec(tt.rate), tt.inclusive)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}
