package session

import (
	"context"
	"log"
	"sync"
)

// NullPreferences keeps preferences in memory for the lifetime of the
// process. Used when Redis is not configured or not reachable.
type NullPreferences struct {
	logger *log.Logger

	mu     sync.RWMutex
	values map[string]string
}

// NewNullPreferences creates an in-memory preferences store.
func NewNullPreferences(logger *log.Logger) *NullPreferences {
	if logger == nil {
		logger = log.New(log.Writer(), "[NullPreferences] ", log.LstdFlags)
	}
	return &NullPreferences{
		logger: logger,
		values: make(map[string]string),
	}
}

// Get returns the stored value of a key.
func (np *NullPreferences) Get(ctx context.Context, email, key string) (string, bool, error) {
	np.mu.RLock()
	defer np.mu.RUnlock()
	value, ok := np.values[prefKey(email, key)]
	return value, ok, nil
}

// Set stores a value for this process only.
func (np *NullPreferences) Set(ctx context.Context, email, key, value string) error {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.values[prefKey(email, key)] = value
	return nil
}

// Delete removes a key.
func (np *NullPreferences) Delete(ctx context.Context, email, key string) error {
	np.mu.Lock()
	defer np.mu.Unlock()
	delete(np.values, prefKey(email, key))
	return nil
}

// HealthCheck always succeeds for the in-memory store.
func (np *NullPreferences) HealthCheck(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (np *NullPreferences) Close() error {
	return nil
}
