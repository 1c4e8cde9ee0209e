package accounting

import (
	"fmt"

	"github.com/nairabooks/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the currency minor-unit rounding tolerance. It is applied
// uniformly: posting balance checks, report closure checks, and the decision
// whether a report line is worth displaying all compare against this value.
var Tolerance = decimal.New(1, -2) // 0.01

// WithinTolerance reports whether two amounts are equal to within Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// Displayable reports whether a balance is large enough to show on a report.
func Displayable(amount decimal.Decimal) bool {
	return amount.Abs().GreaterThan(Tolerance)
}

// SignedBalance computes an account balance from its opening balance and
// debit/credit totals, honoring the sign convention per account type:
// debit increases assets and expenses, credit increases liabilities, equity
// and revenue. This is the single home of the convention; every report goes
// through it.
func SignedBalance(accountType domain.AccountType, opening, totalDebit, totalCredit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return opening.Add(totalDebit).Sub(totalCredit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return opening.Add(totalCredit).Sub(totalDebit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// PeriodMovement is the signed debit/credit delta over a date window,
// excluding the opening balance. This is a movement, not a balance; it is
// what profit and loss reports aggregate.
func PeriodMovement(accountType domain.AccountType, totalDebit, totalCredit decimal.Decimal) (decimal.Decimal, error) {
	return SignedBalance(accountType, decimal.Zero, totalDebit, totalCredit)
}

// DebitCreditColumns places a signed balance into trial-balance columns.
// A positive balance sits on the account's natural side; a negative balance
// flips to the opposite column as an absolute value.
func DebitCreditColumns(accountType domain.AccountType, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	naturalDebit := accountType == domain.Asset || accountType == domain.Expense
	if balance.IsNegative() {
		naturalDebit = !naturalDebit
		balance = balance.Abs()
	}
	if naturalDebit {
		return balance, decimal.Zero
	}
	return decimal.Zero, balance
}
