// Package repository persists strategy summaries and serves them from a
// read-only registry.
package repository

import (
	"context"

	"github.com/okian/blackjack/internal/domain/strategy"
)

// Store provides read/write access to persisted summaries.
type Store interface {
	// Save persists a summary under its key, replacing any previous one.
	Save(ctx context.Context, s strategy.Summary) error

	// Load returns the summary stored for key.
	// Returns ErrNotFound if nothing is stored under key.
	Load(ctx context.Context, key string) (strategy.Summary, error)

	// List returns the stored keys in a stable order.
	List(ctx context.Context) ([]string, error)
}
