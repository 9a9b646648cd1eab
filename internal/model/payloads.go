package model

import "github.com/shopspring/decimal"

// Direction indicates which way money moves in a transaction.
type Direction string

// Transaction direction constants.
const (
	DirectionIncome   Direction = "income"
	DirectionExpense  Direction = "expense"
	DirectionTransfer Direction = "transfer"
)

// TransactionPayload describes a single income, expense, or transfer.
// AccountName and CardID may both be empty when the interpreter could not
// tell which account funds the transaction.
type TransactionPayload struct {
	Direction   Direction       `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	AccountName string          `json:"account_name,omitempty"`
	CardID      string          `json:"card_id,omitempty"`
}

// AccountResolved reports whether the transaction can be persisted without
// asking the user for a funding account.
func (p *TransactionPayload) AccountResolved() bool {
	return p.AccountName != "" || p.CardID != ""
}

// HoldingAction indicates what happened to an investment position.
type HoldingAction string

// Holding action constants.
const (
	ActionBuy  HoldingAction = "buy"
	ActionSell HoldingAction = "sell"
	ActionHold HoldingAction = "hold"
)

// HoldingPayload describes a trade or valuation change of an instrument.
type HoldingPayload struct {
	Instrument  string          `json:"instrument"`
	Ticker      string          `json:"ticker,omitempty"`
	Action      HoldingAction   `json:"action"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	AccountName string          `json:"account_name,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
}

// AccountResolved reports whether the holding is linked to an investment account.
func (p *HoldingPayload) AccountResolved() bool {
	return p.AccountID != ""
}

// AutoPaymentPayload describes a recurring scheduled payment.
type AutoPaymentPayload struct {
	Name          string          `json:"name"`
	PayType       string          `json:"pay_type"`
	Amount        decimal.Decimal `json:"amount"`
	SourceAccount string          `json:"source_account,omitempty"`
}

// AccountResolved reports whether the payment has a funding source.
func (p *AutoPaymentPayload) AccountResolved() bool {
	return p.SourceAccount != ""
}

// AssetUpdatePayload records a new balance for an existing asset account.
type AssetUpdatePayload struct {
	AccountName string          `json:"account_name"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    string          `json:"currency,omitempty"`
}

// CardUpdatePayload records changes to a credit card: outstanding balance,
// interest rate, or the day of month repayment is due.
type CardUpdatePayload struct {
	CardName     string          `json:"card_name"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	RepaymentDay int             `json:"repayment_day,omitempty"`
}

// BudgetPayload sets a spending limit for a category over a period.
type BudgetPayload struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   string          `json:"period,omitempty"`
}
