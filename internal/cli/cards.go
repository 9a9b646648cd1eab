package cli

import (
	"fmt"
	"strings"

	"github.com/ledgertalk/ledgertalk/internal/model"
)

// renderEventCard formats one candidate event as a bordered card. Events that
// carry nothing user-facing render as an empty string.
func renderEventCard(ev model.Event) string {
	var title string
	var lines []string

	switch ev.Kind {
	case model.KindTransaction:
		p := ev.Transaction
		if p == nil {
			return ""
		}
		title = fmt.Sprintf("%s %s", CoinIcon, capitalize(string(p.Direction)))
		lines = append(lines, fmt.Sprintf("Amount: %s", p.Amount.String()))
		if p.Description != "" {
			lines = append(lines, fmt.Sprintf("For: %s", p.Description))
		}
		if p.Category != "" {
			lines = append(lines, fmt.Sprintf("Category: %s", p.Category))
		}
		switch {
		case p.CardID != "":
			lines = append(lines, fmt.Sprintf("Card: %s", p.CardID))
		case p.AccountName != "":
			lines = append(lines, fmt.Sprintf("Account: %s", p.AccountName))
		}

	case model.KindHoldingUpdate:
		p := ev.Holding
		if p == nil {
			return ""
		}
		title = fmt.Sprintf("%s %s %s", ChartIcon, capitalize(string(p.Action)), p.Instrument)
		if !p.Quantity.IsZero() {
			lines = append(lines, fmt.Sprintf("Quantity: %s", p.Quantity.String()))
		}
		if !p.Price.IsZero() {
			lines = append(lines, fmt.Sprintf("Price: %s", p.Price.String()))
		}
		if p.AccountName != "" {
			lines = append(lines, fmt.Sprintf("Account: %s", p.AccountName))
		}

	case model.KindAssetUpdate:
		p := ev.AssetUpdate
		if p == nil {
			return ""
		}
		title = fmt.Sprintf("%s Balance update", BankIcon)
		lines = append(lines,
			fmt.Sprintf("Account: %s", p.AccountName),
			fmt.Sprintf("Balance: %s", p.Balance.String()))

	case model.KindCardUpdate:
		p := ev.CardUpdate
		if p == nil {
			return ""
		}
		title = fmt.Sprintf("%s %s", CardIcon, p.CardName)
		if !p.Outstanding.IsZero() {
			lines = append(lines, fmt.Sprintf("Outstanding: %s", p.Outstanding.String()))
		}
		if !p.InterestRate.IsZero() {
			lines = append(lines, fmt.Sprintf("Interest rate: %s%%", p.InterestRate.String()))
		}
		if p.RepaymentDay > 0 {
			lines = append(lines, fmt.Sprintf("Repayment day: %d", p.RepaymentDay))
		}

	case model.KindBudget:
		p := ev.Budget
		if p == nil {
			return ""
		}
		title = fmt.Sprintf("%s Budget: %s", LedgerIcon, p.Category)
		lines = append(lines, fmt.Sprintf("Limit: %s per %s", p.Amount.String(), orDefault(p.Period, "month")))

	case model.KindAutoPayment:
		p := ev.AutoPayment
		if p == nil {
			return ""
		}
		title = fmt.Sprintf("%s Auto payment: %s", CoinIcon, p.Name)
		lines = append(lines, fmt.Sprintf("Amount: %s", p.Amount.String()))
		if p.SourceAccount != "" {
			lines = append(lines, fmt.Sprintf("From: %s", p.SourceAccount))
		}

	case model.KindQueryResponse:
		if ev.Query == nil {
			return ""
		}
		return InfoStyle.Render(ev.Query.Answer)

	default:
		return ""
	}

	content := TitleStyle.UnsetMargins().Render(title)
	if len(lines) > 0 {
		content += "\n" + strings.Join(lines, "\n")
	}
	return CardStyle.Render(content)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
