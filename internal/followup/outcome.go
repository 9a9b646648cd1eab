// Package followup implements the follow-up resolution engine: the stateful
// logic that decides whether a batch of candidate events needs more user
// input before it can be persisted, and reconciles replies and picker
// choices back into finished events.
package followup

import "github.com/ledgertalk/ledgertalk/internal/model"

// OutcomeKind identifies which of the five results ProcessParseResult produced.
type OutcomeKind string

// Outcome kind constants.
const (
	OutcomeTextFollowUp OutcomeKind = "text_follow_up"
	OutcomePicker       OutcomeKind = "picker_follow_up"
	OutcomeEventCards   OutcomeKind = "event_cards"
	OutcomeNone         OutcomeKind = "none"
	OutcomeNoAccounts   OutcomeKind = "no_accounts_guidance"
)

// Outcome is the engine's externally observable result for one batch.
// Fields beyond Kind are populated per variant: Question for text follow-ups,
// Descriptor for picker follow-ups, Events for cards, Message plus Events for
// no-accounts guidance.
type Outcome struct {
	Descriptor *model.NeedsMoreInfo
	Question   string
	Message    string
	Events     []model.Event
	Kind       OutcomeKind
}

// TextFollowUp asks the user a free-text clarifying question.
func TextFollowUp(question string) Outcome {
	return Outcome{Kind: OutcomeTextFollowUp, Question: question}
}

// PickerFollowUp asks the user to choose from a structured account chooser.
func PickerFollowUp(descriptor *model.NeedsMoreInfo) Outcome {
	return Outcome{Kind: OutcomePicker, Descriptor: descriptor, Question: descriptor.Question}
}

// EventCards presents a complete batch ready to persist.
func EventCards(events []model.Event) Outcome {
	return Outcome{Kind: OutcomeEventCards, Events: events}
}

// NoFollowUpNeeded signals there is nothing to show or persist.
func NoFollowUpNeeded() Outcome {
	return Outcome{Kind: OutcomeNone}
}

// NoAccountsGuidance tells the user to create an account first; the batch is
// stashed until one exists.
func NoAccountsGuidance(message string, events []model.Event) Outcome {
	return Outcome{Kind: OutcomeNoAccounts, Message: message, Events: events}
}
