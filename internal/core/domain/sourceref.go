package domain

// SourceType identifies which kind of source document produced a ledger
// entry. It replaces the one-nullable-foreign-key-per-document-type layout
// with a single discriminator plus id, so "exactly one or none" is enforced
// structurally.
type SourceType string

const (
	SourceSalesInvoice       SourceType = "sales_invoice"
	SourcePurchaseBill       SourceType = "purchase_bill"
	SourceExpense            SourceType = "expense"
	SourceOtherIncome        SourceType = "other_income"
	SourcePayslip            SourceType = "payslip"
	SourceFundTransfer       SourceType = "fund_transfer"
	SourceBankReconciliation SourceType = "bank_reconciliation"
)

// knownSourceTypes is the closed set of recognized discriminators.
var knownSourceTypes = map[SourceType]struct{}{
	SourceSalesInvoice:       {},
	SourcePurchaseBill:       {},
	SourceExpense:            {},
	SourceOtherIncome:        {},
	SourcePayslip:            {},
	SourceFundTransfer:       {},
	SourceBankReconciliation: {},
}

// SourceRef is an optional reference from a ledger entry back to the source
// document that originated it. The zero value means "no reference".
type SourceRef struct {
	Type SourceType `json:"type,omitempty"`
	ID   string     `json:"id,omitempty"`
}

// NewSourceRef builds a SourceRef from raw discriminator and id. An
// unrecognized type or empty id yields the empty reference; callers posting
// with an unknown source type simply get no traceability link.
func NewSourceRef(sourceType string, sourceID string) SourceRef {
	st := SourceType(sourceType)
	if _, ok := knownSourceTypes[st]; !ok || sourceID == "" {
		return SourceRef{}
	}
	return SourceRef{Type: st, ID: sourceID}
}

// IsZero reports whether the reference is absent.
func (r SourceRef) IsZero() bool {
	return r.Type == "" || r.ID == ""
}
