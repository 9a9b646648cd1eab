// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/ledgertalk/ledgertalk/internal/model"
)

// Interpreter defines the contract for the natural-language interpreter
// that turns free text into candidate events.
type Interpreter interface {
	Interpret(ctx context.Context, text string) ([]model.Event, error)
}

// EventFilter defines filtering options for event queries.
type EventFilter struct {
	Kind  model.EventKind
	Limit int
}

// StoredEvent is a persisted event with its storage metadata.
type StoredEvent struct {
	CreatedAt time.Time
	ID        string
	Summary   string
	Event     model.Event
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Event operations
	SaveEvents(ctx context.Context, events []model.Event, summary string) (int, error)
	GetEvents(ctx context.Context, filter EventFilter) ([]StoredEvent, error)

	// Account inventory
	ListAccounts(ctx context.Context) ([]model.Account, error)
	GetAccountByName(ctx context.Context, name string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) error

	// Card inventory
	ListCards(ctx context.Context) ([]model.Card, error)
	CreateCard(ctx context.Context, card *model.Card) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
