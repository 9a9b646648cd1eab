package followup

import (
	"fmt"
	"log/slog"

	"github.com/ledgertalk/ledgertalk/internal/model"
)

// Manager is the follow-up state machine for one chat session. It holds at
// most one pending descriptor, the batch co-pending on a picker choice, and
// an independent stash of events waiting for an account to be created.
// Callers serialize turns; the Manager does not defend against concurrent
// mutation.
type Manager struct {
	pending              *model.NeedsMoreInfo
	pendingEvents        []model.Event
	pendingForNewAccount []model.Event
}

// NewManager creates an idle follow-up manager.
func NewManager() *Manager {
	return &Manager{}
}

// ProcessParseResult inspects an interpreter batch against the current
// account inventory and decides what the user must be shown next. First
// match wins: an explicit needs-more-info event, then an implicit
// missing-account condition, then the batch passes through as cards.
func (m *Manager) ProcessParseResult(events []model.Event, accounts []model.Account) Outcome {
	if !hasPresentable(events) {
		return NoFollowUpNeeded()
	}

	for _, ev := range events {
		if ev.Kind != model.KindNeedsMoreInfo || ev.MoreInfo == nil {
			continue
		}
		info := *ev.MoreInfo
		if info.NeedsPicker() {
			if !HasEligibleTarget(info.Picker, accounts) {
				// The interpreter's question doubles as guidance here. The
				// partial payload is stashed as an unresolved event so a
				// later account creation can complete it.
				stash := eventsFromPartial(&info)
				m.pendingForNewAccount = append(m.pendingForNewAccount, stash...)
				slog.Info("No eligible picker target, stashing partial event",
					"picker", info.Picker,
					"stashed", len(stash))
				return NoAccountsGuidance(info.Question, stash)
			}
			m.pending = &info
			return PickerFollowUp(&info)
		}
		m.pending = &info
		return TextFollowUp(info.Question)
	}

	if info := CheckNeedAccountSelection(events); info != nil {
		if !HasEligibleTarget(info.Picker, accounts) {
			// Append rather than replace: the stash outlives single turns, and
			// every batch the user was promised a link for must survive until
			// an account exists.
			m.pendingForNewAccount = append(m.pendingForNewAccount, events...)
			slog.Info("No eligible account for batch, stashing until one is created",
				"picker", info.Picker,
				"events", len(events))
			return NoAccountsGuidance(guidanceFor(info.Picker), events)
		}
		m.pending = info
		m.pendingEvents = append([]model.Event(nil), events...)
		return PickerFollowUp(info)
	}

	return EventCards(events)
}

// CombinedTextForFollowUp fuses the user's reply with the pending descriptor
// into a new statement for re-interpretation. The descriptor is consumed
// exactly once; with nothing pending it reports false and the caller should
// interpret the raw input.
func (m *Manager) CombinedTextForFollowUp(input string) (string, bool) {
	if m.pending == nil {
		return "", false
	}
	pending := m.pending
	m.pending = nil
	return CombineText(input, pending), true
}

// HandlePickerSelection consumes a picker choice. When a batch is co-pending
// the selection is fanned out across it; otherwise a single event is
// reconstructed from the descriptor's partial payload. Reports false when
// nothing could be resolved.
func (m *Manager) HandlePickerSelection(selected model.SelectedAccount, descriptor *model.NeedsMoreInfo) ([]model.Event, string, bool) {
	m.pending = nil

	if len(m.pendingEvents) > 0 {
		batch := m.pendingEvents
		m.pendingEvents = nil
		updated, confirm := ApplyAccountToEvents(batch, selected)
		return updated, confirm, true
	}

	return CreateEventFromPartial(descriptor, selected)
}

// ApplyPendingToNewAccount links every stashed event to a freshly created
// account, clears the stash, and reports how many records were linked.
// Reports false when nothing was stashed.
func (m *Manager) ApplyPendingToNewAccount(account model.Account) ([]model.Event, string, bool) {
	if len(m.pendingForNewAccount) == 0 {
		return nil, "", false
	}

	stash := m.pendingForNewAccount
	m.pendingForNewAccount = nil

	selected := model.SelectedAccount{ID: account.ID, Name: account.Name}
	updated, count := applyAccount(stash, selected)
	confirm := fmt.Sprintf("Linked %d earlier record(s) to %s", count, account.Name)
	return updated, confirm, true
}

// Cancel clears the pending descriptor and any co-pending batch. The
// new-account stash survives: its lifecycle is tied to account creation,
// not to the current conversational turn. Safe to call repeatedly.
func (m *Manager) Cancel() {
	m.pending = nil
	m.pendingEvents = nil
}

// AwaitingReply reports whether the next user input should be routed through
// CombinedTextForFollowUp instead of interpreted directly.
func (m *Manager) AwaitingReply() bool {
	return m.pending != nil
}

// HasStashForNewAccount reports whether events are waiting for an account
// to be created.
func (m *Manager) HasStashForNewAccount() bool {
	return len(m.pendingForNewAccount) > 0
}

// hasPresentable reports whether the batch contains anything beyond null
// statements.
func hasPresentable(events []model.Event) bool {
	for _, ev := range events {
		if ev.Kind != model.KindNullStatement {
			return true
		}
	}
	return false
}

// eventsFromPartial re-wraps a descriptor's partial payload as an unresolved
// event so it can sit in the new-account stash. Empty descriptors stash
// nothing.
func eventsFromPartial(info *model.NeedsMoreInfo) []model.Event {
	switch {
	case info.Transaction != nil:
		return []model.Event{model.NewTransactionEvent(*info.Transaction)}
	case info.Holding != nil:
		return []model.Event{model.NewHoldingEvent(*info.Holding)}
	case info.AutoPayment != nil:
		return []model.Event{model.NewAutoPaymentEvent(*info.AutoPayment)}
	default:
		return nil
	}
}

func guidanceFor(category model.PickerCategory) string {
	if category == model.PickerInvestmentAccount {
		return "You don't have an investment account yet. Create a brokerage or " +
			"crypto account first, for example \"add a brokerage account called Schwab\", " +
			"and I'll file this trade under it."
	}
	return "You don't have a spendable account yet. Add one first, for example " +
		"\"add a bank account called Checking\", and I'll link these records to it."
}
