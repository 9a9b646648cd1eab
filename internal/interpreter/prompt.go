package interpreter

import (
	"fmt"
	"strings"

	"github.com/ledgertalk/ledgertalk/internal/model"
)

const systemPrompt = "You are a personal finance interpreter. You convert one " +
	"free-form statement about financial activity into structured events. " +
	"Respond with STRICT JSON only, in exactly the schema requested."

// buildPrompt constructs the user prompt for one statement. The account and
// card inventories are included so the model can resolve account references
// by name.
func buildPrompt(text string, accounts []model.Account, cards []model.Card) string {
	var b strings.Builder

	b.WriteString("Convert the statement below into a JSON array of events.\n\n")
	b.WriteString("Each event is an object with a \"kind\" field, one of:\n")
	b.WriteString("transaction, asset_update, card_update, holding_update, budget,\n")
	b.WriteString("auto_payment, query_response, null_statement, needs_more_info.\n\n")
	b.WriteString("Exactly one payload field matching the kind must be present:\n")
	b.WriteString(`- "transaction": {"direction": "income"|"expense"|"transfer", "amount": "12.50", "category": str, "description": str, "account_name": str?, "card_id": str?}` + "\n")
	b.WriteString(`- "asset_update": {"account_name": str, "balance": "1000", "currency": str?}` + "\n")
	b.WriteString(`- "card_update": {"card_name": str, "outstanding": "0", "interest_rate": "0", "repayment_day": int?}` + "\n")
	b.WriteString(`- "holding": {"instrument": str, "ticker": str?, "action": "buy"|"sell"|"hold", "quantity": "1", "price": "100", "currency": str, "account_name": str?, "account_id": str?}` + "\n")
	b.WriteString(`- "budget": {"category": str, "amount": "500", "period": "monthly"}` + "\n")
	b.WriteString(`- "auto_payment": {"name": str, "pay_type": str, "amount": "100", "source_account": str?}` + "\n")
	b.WriteString(`- "query": {"answer": str}` + "\n")
	b.WriteString(`- "more_info": {"original_intent": kind, "missing_fields": [str], "question": str, "picker": str?, plus the partial payload under its field name}` + "\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Amounts, quantities, and prices are decimal strings, never floats.\n")
	b.WriteString("- Only name an account or card that appears in the inventories below.\n")
	b.WriteString("- Leave account_name and card_id empty when the statement does not say which account was used.\n")
	b.WriteString("- When a required field other than the account is missing, emit a needs_more_info event carrying the partial payload, the missing field names, and a short question for the user.\n")
	b.WriteString("- picker is one of expense_account, income_account, investment_account, credit_card, auto_pay_source, or omitted for free-text questions.\n")
	b.WriteString("- A statement with no financial content is a single null_statement event.\n")
	b.WriteString("- Return ONLY the raw JSON array. No code fences, no commentary.\n\n")

	if len(accounts) > 0 {
		b.WriteString("Accounts:\n")
		for _, a := range accounts {
			fmt.Fprintf(&b, "- %s (%s)\n", a.Name, a.Kind)
		}
		b.WriteString("\n")
	}
	if len(cards) > 0 {
		b.WriteString("Cards:\n")
		for _, c := range cards {
			fmt.Fprintf(&b, "- %s (ending %s)\n", c.Name, c.LastFour)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Statement: %s\n", text)

	return b.String()
}
