package memory

import (
	"context"
	"time"
)

// Store records which session ids are currently live.
type Store interface {
	// Touch marks the session as active and resets its expiry.
	// A zero ttl uses the store's default.
	Touch(ctx context.Context, sessionID string, ttl time.Duration) error

	// Active reports whether the session id is still live.
	Active(ctx context.Context, sessionID string) (bool, error)

	// Forget drops the session id. Forgetting an unknown id is not
	// an error.
	Forget(ctx context.Context, sessionID string) error

	// Close releases any underlying connections.
	Close() error
}
