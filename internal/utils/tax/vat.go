package tax

import "github.com/shopspring/decimal"

// DefaultVATRate is the Nigerian VAT rate (7.5%), a per-tenant-overridable
// configuration default.
var DefaultVATRate = rate("0.075")

// CalculateVAT computes the VAT portion of an amount. When inclusive, the
// amount already contains VAT and the tax is extracted as amount*r/(1+r);
// otherwise VAT is additive on top of the amount. A zero or negative rate
// falls back to the default.
func CalculateVAT(amount, vatRate decimal.Decimal, inclusive bool) decimal.Decimal {
	if vatRate.LessThanOrEqual(decimal.Zero) {
		vatRate = DefaultVATRate
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if inclusive {
		one := decimal.NewFromInt(1)
		return amount.Mul(vatRate).Div(one.Add(vatRate)).RoundBank(2)
	}
	return amount.Mul(vatRate).RoundBank(2)
}
