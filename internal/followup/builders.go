package followup

import (
	"fmt"
	"strings"

	"github.com/ledgertalk/ledgertalk/internal/model"
)

// textBuilder merges a raw user reply with a pending partial event to
// produce a new self-contained statement for re-interpretation. A builder
// returns "" when the missing field is not one it recognizes, letting the
// next builder (or the raw-input fallback) apply.
type textBuilder struct {
	build  func(input string, pending *model.NeedsMoreInfo) string
	intent model.EventKind
}

// Builders are tried in registration order; the first whose intent matches
// and whose build returns a non-empty string wins.
var textBuilders = []textBuilder{
	{intent: model.KindTransaction, build: buildTransactionText},
	{intent: model.KindHoldingUpdate, build: buildHoldingText},
	{intent: model.KindCardUpdate, build: buildCardUpdateText},
	{intent: model.KindBudget, build: buildBudgetText},
	{intent: model.KindAutoPayment, build: buildAutoPaymentText},
}

// CombineText fuses the user's reply with the pending descriptor into a new
// input string. Falls back to the raw input unchanged so a reply can never
// block progress.
func CombineText(input string, pending *model.NeedsMoreInfo) string {
	for _, b := range textBuilders {
		if b.intent != pending.OriginalIntent {
			continue
		}
		if text := b.build(input, pending); text != "" {
			return text
		}
	}
	return input
}

func buildTransactionText(input string, pending *model.NeedsMoreInfo) string {
	p := pending.Transaction
	if p == nil {
		return ""
	}

	switch {
	case pending.Missing(model.FieldAmount):
		amount := stripCurrencyWords(input)
		if amount == "" {
			return ""
		}
		return fmt.Sprintf("%s %s %s块", p.Description, directionWord(p.Direction), amount)
	case pending.Missing(model.FieldCategory):
		category := strings.TrimSpace(input)
		if category == "" {
			return ""
		}
		return fmt.Sprintf("%s %s %s, category is %s",
			p.Description, directionWord(p.Direction), p.Amount.String(), category)
	default:
		return ""
	}
}

func buildHoldingText(input string, pending *model.NeedsMoreInfo) string {
	h := pending.Holding
	if h == nil {
		return ""
	}

	switch {
	case pending.Missing(model.FieldPrice):
		price := stripCurrencyWords(input)
		if price == "" {
			return ""
		}
		return fmt.Sprintf("%s %s %s at price %s", string(h.Action), h.Quantity.String(), h.Instrument, price)
	case pending.Missing(model.FieldQuantity):
		quantity := stripCurrencyWords(input)
		if quantity == "" {
			return ""
		}
		return fmt.Sprintf("%s %s %s at price %s", string(h.Action), quantity, h.Instrument, h.Price.String())
	default:
		return ""
	}
}

func buildCardUpdateText(input string, pending *model.NeedsMoreInfo) string {
	c := pending.CardUpdate
	if c == nil {
		return ""
	}

	switch {
	case pending.Missing(model.FieldInterestRate):
		rate := strings.TrimSuffix(stripCurrencyWords(input), "%")
		if rate == "" {
			return ""
		}
		return fmt.Sprintf("%s card interest rate %s%%", c.CardName, rate)
	case pending.Missing(model.FieldRepaymentDay):
		day := stripDaySuffix(input)
		if day == "" {
			return ""
		}
		return fmt.Sprintf("%s card repayment day %s", c.CardName, day)
	default:
		return ""
	}
}

func buildBudgetText(input string, pending *model.NeedsMoreInfo) string {
	b := pending.Budget
	if b == nil || !pending.Missing(model.FieldAmount) {
		return ""
	}
	amount := stripCurrencyWords(stripPerMonth(input))
	if amount == "" {
		return ""
	}
	return fmt.Sprintf("budget %s %s块 per month", b.Category, amount)
}

func buildAutoPaymentText(input string, pending *model.NeedsMoreInfo) string {
	a := pending.AutoPayment
	if a == nil || !pending.Missing(model.FieldAmount) {
		return ""
	}
	amount := stripCurrencyWords(stripPerMonth(input))
	if amount == "" {
		return ""
	}
	return fmt.Sprintf("%s auto payment %s块 monthly", a.Name, amount)
}

func directionWord(d model.Direction) string {
	switch d {
	case model.DirectionIncome:
		return "income"
	case model.DirectionTransfer:
		return "transfer"
	default:
		return "expense"
	}
}

// Noise tokens stripped from replies before re-embedding the value. Longer
// tokens first so "块钱" wins over "块".
var currencyWords = []string{
	"块钱", "人民币", "块", "元", "¥",
	"dollars", "dollar", "bucks", "yuan", "rmb", "usd", "$",
}

func stripCurrencyWords(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, w := range currencyWords {
		if idx := strings.Index(lower, w); idx >= 0 {
			s = s[:idx] + s[idx+len(w):]
			lower = strings.ToLower(s)
		}
	}
	return strings.TrimSpace(s)
}

var daySuffixes = []string{"号", "日", "th", "st", "nd", "rd"}

func stripDaySuffix(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "the ")
	s = strings.TrimPrefix(s, "day ")
	for _, suffix := range daySuffixes {
		s = strings.TrimSuffix(s, suffix)
	}
	return strings.TrimSpace(s)
}

var perMonthPhrases = []string{"per month", "a month", "monthly", "每个月", "每月"}

func stripPerMonth(s string) string {
	lower := strings.ToLower(s)
	for _, phrase := range perMonthPhrases {
		if idx := strings.Index(lower, phrase); idx >= 0 {
			s = s[:idx] + s[idx+len(phrase):]
			lower = strings.ToLower(s)
		}
	}
	return strings.TrimSpace(s)
}
