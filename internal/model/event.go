// Package model defines the core domain models used throughout the application.
package model

// EventKind tags an Event with the payload it carries.
type EventKind string

// Event kind constants.
const (
	KindTransaction   EventKind = "transaction"
	KindAssetUpdate   EventKind = "asset_update"
	KindCardUpdate    EventKind = "card_update"
	KindHoldingUpdate EventKind = "holding_update"
	KindBudget        EventKind = "budget"
	KindAutoPayment   EventKind = "auto_payment"
	KindQueryResponse EventKind = "query_response"
	KindNullStatement EventKind = "null_statement"
	KindNeedsMoreInfo EventKind = "needs_more_info"
)

// Event is one unit of financial activity proposed by the interpreter.
// Exactly one payload pointer is non-nil, matching Kind. Use the New*Event
// constructors to keep the tag and payload in agreement.
type Event struct {
	Transaction *TransactionPayload   `json:"transaction,omitempty"`
	AssetUpdate *AssetUpdatePayload   `json:"asset_update,omitempty"`
	CardUpdate  *CardUpdatePayload    `json:"card_update,omitempty"`
	Holding     *HoldingPayload       `json:"holding,omitempty"`
	Budget      *BudgetPayload        `json:"budget,omitempty"`
	AutoPayment *AutoPaymentPayload   `json:"auto_payment,omitempty"`
	Query       *QueryResponsePayload `json:"query,omitempty"`
	MoreInfo    *NeedsMoreInfo        `json:"more_info,omitempty"`
	Kind        EventKind             `json:"kind"`
}

// NewTransactionEvent wraps a transaction payload in an Event.
func NewTransactionEvent(p TransactionPayload) Event {
	return Event{Kind: KindTransaction, Transaction: &p}
}

// NewAssetUpdateEvent wraps an asset update payload in an Event.
func NewAssetUpdateEvent(p AssetUpdatePayload) Event {
	return Event{Kind: KindAssetUpdate, AssetUpdate: &p}
}

// NewCardUpdateEvent wraps a credit card update payload in an Event.
func NewCardUpdateEvent(p CardUpdatePayload) Event {
	return Event{Kind: KindCardUpdate, CardUpdate: &p}
}

// NewHoldingEvent wraps a holding trade payload in an Event.
func NewHoldingEvent(p HoldingPayload) Event {
	return Event{Kind: KindHoldingUpdate, Holding: &p}
}

// NewBudgetEvent wraps a budget payload in an Event.
func NewBudgetEvent(p BudgetPayload) Event {
	return Event{Kind: KindBudget, Budget: &p}
}

// NewAutoPaymentEvent wraps an auto-payment payload in an Event.
func NewAutoPaymentEvent(p AutoPaymentPayload) Event {
	return Event{Kind: KindAutoPayment, AutoPayment: &p}
}

// NewQueryResponseEvent wraps a query answer in an Event.
func NewQueryResponseEvent(answer string) Event {
	return Event{Kind: KindQueryResponse, Query: &QueryResponsePayload{Answer: answer}}
}

// NewNullStatementEvent represents input that carried no financial activity.
func NewNullStatementEvent() Event {
	return Event{Kind: KindNullStatement}
}

// NewMoreInfoEvent wraps a needs-more-info descriptor in an Event.
func NewMoreInfoEvent(info NeedsMoreInfo) Event {
	return Event{Kind: KindNeedsMoreInfo, MoreInfo: &info}
}

// QueryResponsePayload carries the answer to a question about existing data.
type QueryResponsePayload struct {
	Answer string `json:"answer"`
}
