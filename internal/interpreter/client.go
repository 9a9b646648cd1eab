// Package interpreter turns free-form financial statements into batches of
// candidate events using an LLM provider.
package interpreter

import "context"

// Client defines the interface for LLM providers.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds provider settings for building a client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}
