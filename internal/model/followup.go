package model

import "slices"

// PickerCategory names the class of target a structured chooser must offer.
type PickerCategory string

// Picker category constants. PickerNone means the follow-up needs free text
// rather than a structured choice.
const (
	PickerNone              PickerCategory = ""
	PickerExpenseAccount    PickerCategory = "expense_account"
	PickerIncomeAccount     PickerCategory = "income_account"
	PickerInvestmentAccount PickerCategory = "investment_account"
	PickerCreditCard        PickerCategory = "credit_card"
	PickerAutoPaySource     PickerCategory = "auto_pay_source"
)

// Missing field names used in NeedsMoreInfo.MissingFields.
const (
	FieldAmount       = "amount"
	FieldCategory     = "category"
	FieldPrice        = "price"
	FieldQuantity     = "quantity"
	FieldInterestRate = "interest_rate"
	FieldRepaymentDay = "repayment_day"
	FieldAccount      = "account"
)

// NeedsMoreInfo describes why a candidate event cannot be persisted yet.
// It is created by the interpreter when a statement is incomplete, or
// synthesized locally when an otherwise-complete event lacks an account.
// At most one partial payload is populated, matching OriginalIntent.
type NeedsMoreInfo struct {
	OriginalIntent EventKind           `json:"original_intent"`
	MissingFields  []string            `json:"missing_fields"`
	Question       string              `json:"question"`
	Picker         PickerCategory      `json:"picker,omitempty"`
	Transaction    *TransactionPayload `json:"transaction,omitempty"`
	Holding        *HoldingPayload     `json:"holding,omitempty"`
	AutoPayment    *AutoPaymentPayload `json:"auto_payment,omitempty"`
	CardUpdate     *CardUpdatePayload  `json:"card_update,omitempty"`
	Budget         *BudgetPayload      `json:"budget,omitempty"`
}

// NeedsPicker reports whether resolution requires a structured chooser
// rather than a free-text reply.
func (n *NeedsMoreInfo) NeedsPicker() bool {
	return n.Picker != PickerNone
}

// Missing reports whether the named field is recorded as missing.
func (n *NeedsMoreInfo) Missing(field string) bool {
	return slices.Contains(n.MissingFields, field)
}
