package accounting_test

import (
	"testing"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/nairabooks/ledger_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSignedBalance(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		opening     string
		debit       string
		credit      string
		want        string
	}{
		{"asset debit increases", domain.Asset, "0", "100", "0", "100"},
		{"asset credit decreases", domain.Asset, "0", "0", "100", "-100"},
		{"revenue credit increases", domain.Revenue, "0", "0", "100", "100"},
		{"revenue debit decreases", domain.Revenue, "0", "100", "0", "-100"},
		{"expense like asset", domain.Expense, "0", "50", "20", "30"},
		{"liability like revenue", domain.Liability, "0", "20", "50", "30"},
		{"equity with opening", domain.Equity, "1000", "0", "500", "1500"},
		{"asset opening applies", domain.Asset, "250", "100", "50", "300"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedBalance(tt.accountType, dec(tt.opening), dec(tt.debit), dec(tt.credit))
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestSignedBalance_UnknownType(t *testing.T) {
	_, err := accounting.SignedBalance(domain.AccountType("BOGUS"), decimal.Zero, decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestPeriodMovement_ExcludesOpening(t *testing.T) {
	// Movement never includes the opening balance; only the window's totals.
	got, err := accounting.PeriodMovement(domain.Revenue, dec("100"), dec("600"))
	require.NoError(t, err)
	assert.True(t, dec("500").Equal(got))
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, accounting.WithinTolerance(dec("100.00"), dec("100.01")))
	assert.True(t, accounting.WithinTolerance(dec("100.01"), dec("100.00")))
	assert.False(t, accounting.WithinTolerance(dec("100.00"), dec("100.02")))
}

func TestDisplayable(t *testing.T) {
	assert.False(t, accounting.Displayable(dec("0.01")))
	assert.False(t, accounting.Displayable(dec("-0.01")))
	assert.True(t, accounting.Displayable(dec("0.02")))
	assert.True(t, accounting.Displayable(dec("-5")))
}

func TestDebitCreditColumns(t *testing.T) {
	d, c := accounting.DebitCreditColumns(domain.Asset, dec("100"))
	assert.True(t, dec("100").Equal(d))
	assert.True(t, c.IsZero())

	// Negative asset balance flips to the credit column as an absolute value.
	d, c = accounting.DebitCreditColumns(domain.Asset, dec("-40"))
	assert.True(t, d.IsZero())
	assert.True(t, dec("40").Equal(c))

	d, c = accounting.DebitCreditColumns(domain.Revenue, dec("100"))
	assert.True(t, d.IsZero())
	assert.True(t, dec("100").Equal(c))

	d, c = accounting.DebitCreditColumns(domain.Liability, dec("-25"))
	assert.True(t, dec("25").Equal(d))
	assert.True(t, c.IsZero())
}

func TestCodePrefixClassifier(t *testing.T) {
	cl := accounting.CodePrefixClassifier()

	assert.True(t, cl.IsCurrent(domain.Asset, "1000"))   // cash
	assert.True(t, cl.IsCurrent(domain.Asset, "1400"))   // vat refundable
	assert.False(t, cl.IsCurrent(domain.Asset, "1500"))  // fixed assets
	assert.True(t, cl.IsCurrent(domain.Liability, "2100"))
	assert.False(t, cl.IsCurrent(domain.Liability, "2500"))
	assert.False(t, cl.IsCurrent(domain.Equity, "3000"))
	assert.False(t, cl.IsCurrent(domain.Asset, "9"))
}
