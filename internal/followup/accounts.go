package followup

import (
	"fmt"

	"github.com/ledgertalk/ledgertalk/internal/model"
)

// CheckNeedAccountSelection scans a batch for an event that is complete
// except for its funding account. Transactions are checked before holdings;
// the first unresolved event found drives the picker category, and all
// events sharing that condition are resolved together by one pick. Returns
// nil when the whole batch is account-resolved.
func CheckNeedAccountSelection(events []model.Event) *model.NeedsMoreInfo {
	for _, ev := range events {
		if ev.Kind != model.KindTransaction || ev.Transaction == nil {
			continue
		}
		if ev.Transaction.AccountResolved() {
			continue
		}
		picker := model.PickerExpenseAccount
		question := "Select the account this payment came from"
		if ev.Transaction.Direction == model.DirectionIncome {
			picker = model.PickerIncomeAccount
			question = "Select the account that received this income"
		}
		partial := *ev.Transaction
		return &model.NeedsMoreInfo{
			OriginalIntent: model.KindTransaction,
			MissingFields:  []string{model.FieldAccount},
			Question:       question,
			Picker:         picker,
			Transaction:    &partial,
		}
	}

	for _, ev := range events {
		if ev.Kind != model.KindHoldingUpdate || ev.Holding == nil {
			continue
		}
		if ev.Holding.AccountResolved() || ev.Holding.AccountName != "" {
			continue
		}
		partial := *ev.Holding
		return &model.NeedsMoreInfo{
			OriginalIntent: model.KindHoldingUpdate,
			MissingFields:  []string{model.FieldAccount},
			Question:       "Select the investment account for this trade",
			Picker:         model.PickerInvestmentAccount,
			Holding:        &partial,
		}
	}

	return nil
}

// ApplyAccountToEvents applies the chosen target to every event in the
// batch that still lacks an account. Already-resolved events are returned
// untouched. The confirmation text names the update count and the target.
func ApplyAccountToEvents(events []model.Event, selected model.SelectedAccount) ([]model.Event, string) {
	updated, count := applyAccount(events, selected)
	return updated, fmt.Sprintf("Filed %d record(s) under %s", count, selected.Name)
}

func applyAccount(events []model.Event, selected model.SelectedAccount) ([]model.Event, int) {
	updated := make([]model.Event, len(events))
	copy(updated, events)

	count := 0
	for i := range updated {
		ev := &updated[i]
		switch ev.Kind {
		case model.KindTransaction:
			if ev.Transaction == nil || ev.Transaction.AccountResolved() {
				continue
			}
			p := *ev.Transaction
			if selected.IsCard {
				p.CardID = selected.CardID
			} else {
				p.AccountName = selected.Name
			}
			ev.Transaction = &p
			count++
		case model.KindHoldingUpdate:
			if ev.Holding == nil || ev.Holding.AccountResolved() || ev.Holding.AccountName != "" {
				continue
			}
			h := *ev.Holding
			h.AccountID = selected.ID
			h.AccountName = selected.Name
			ev.Holding = &h
			count++
		case model.KindAutoPayment:
			if ev.AutoPayment == nil || ev.AutoPayment.AccountResolved() {
				continue
			}
			a := *ev.AutoPayment
			a.SourceAccount = selected.Name
			ev.AutoPayment = &a
			count++
		}
	}

	return updated, count
}

// CreateEventFromPartial reconstructs a single finished event from a stashed
// partial payload plus the chosen account. Returns false for intents it does
// not support, or when the descriptor carries no payload for its intent;
// callers treat false as a no-op.
func CreateEventFromPartial(pending *model.NeedsMoreInfo, selected model.SelectedAccount) ([]model.Event, string, bool) {
	if pending == nil {
		return nil, "", false
	}

	switch pending.OriginalIntent {
	case model.KindTransaction:
		if pending.Transaction == nil {
			return nil, "", false
		}
		p := *pending.Transaction
		if selected.IsCard {
			p.CardID = selected.CardID
		} else {
			p.AccountName = selected.Name
		}
		verb := "paid via"
		if p.Direction == model.DirectionIncome {
			verb = "stored into"
		}
		confirm := fmt.Sprintf("Recorded %s %s, %s %s",
			p.Description, p.Amount.String(), verb, selected.Name)
		return []model.Event{model.NewTransactionEvent(p)}, confirm, true

	case model.KindHoldingUpdate:
		if pending.Holding == nil {
			return nil, "", false
		}
		h := *pending.Holding
		h.AccountID = selected.ID
		h.AccountName = selected.Name
		confirm := fmt.Sprintf("Recorded %s %s %s in %s",
			string(h.Action), h.Quantity.String(), h.Instrument, selected.Name)
		return []model.Event{model.NewHoldingEvent(h)}, confirm, true

	case model.KindAutoPayment:
		if pending.AutoPayment == nil {
			return nil, "", false
		}
		a := *pending.AutoPayment
		a.SourceAccount = selected.Name
		confirm := fmt.Sprintf("Auto payment %s will be taken from %s", a.Name, selected.Name)
		return []model.Event{model.NewAutoPaymentEvent(a)}, confirm, true

	default:
		return nil, "", false
	}
}
