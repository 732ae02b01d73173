package session

import (
	"context"
	"io"
	"log"
)

// Well-known preference keys.
const (
	PrefLanguage       = "language"
	PrefDefaultFilters = "default_filters"
	PrefLastView       = "last_view"
	PrefPageSize       = "page_size"
)

// Preferences persists small per-user settings between sessions.
type Preferences interface {
	// Get returns the stored value of a key; ok is false when unset.
	Get(ctx context.Context, email, key string) (value string, ok bool, err error)

	// Set stores a value under a key.
	Set(ctx context.Context, email, key, value string) error

	// Delete removes a key.
	Delete(ctx context.Context, email, key string) error

	// HealthCheck verifies the backing store is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases the backing connection.
	Close() error
}

// NewPreferences creates a preferences store based on the Redis URL.
// An empty or unreachable URL degrades to an in-memory store, so
// preferences always work and simply stop persisting across restarts.
func NewPreferences(redisURL string, logger *log.Logger) Preferences {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if redisURL == "" {
		return NewNullPreferences(logger)
	}

	if prefs, err := NewRedisPreferences(redisURL, logger); err == nil {
		return prefs
	}

	return NewNullPreferences(logger)
}
