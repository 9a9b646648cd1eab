package interpreter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgertalk/ledgertalk/internal/common"
	"github.com/ledgertalk/ledgertalk/internal/model"
	"github.com/ledgertalk/ledgertalk/internal/service"
)

// Interpreter implements service.Interpreter on top of an LLM client. The
// account and card inventories are refreshed per call so the model can
// resolve references against the current state.
type Interpreter struct {
	client  Client
	storage service.Storage
}

// New creates an interpreter backed by the given client and inventory source.
func New(client Client, storage service.Storage) *Interpreter {
	return &Interpreter{
		client:  client,
		storage: storage,
	}
}

// Interpret converts one free-form statement into a batch of candidate
// events, retrying transient provider failures.
func (i *Interpreter) Interpret(ctx context.Context, text string) ([]model.Event, error) {
	accounts, err := i.storage.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	cards, err := i.storage.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	prompt := buildPrompt(text, accounts, cards)

	var events []model.Event
	retryErr := common.WithRetry(ctx, func() error {
		raw, completeErr := i.client.Complete(ctx, systemPrompt, prompt)
		if completeErr != nil {
			return &common.RetryableError{Err: completeErr, Retryable: true}
		}
		parsed, parseErr := ParseEvents(raw)
		if parseErr != nil {
			// A malformed response is worth one more attempt; the model is
			// not deterministic.
			return &common.RetryableError{Err: parseErr, Retryable: true}
		}
		events = parsed
		return nil
	}, service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
	})

	if retryErr != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInterpretation, retryErr)
	}

	slog.Debug("Interpreted statement",
		"events", len(events),
		"input_len", len(text))

	return events, nil
}
