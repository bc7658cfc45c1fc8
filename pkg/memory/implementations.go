package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL is the expiry applied when Touch is called with a zero ttl.
const DefaultTTL = time.Hour

// RedisStore implements Store on Redis so multiple nodes can share the
// live-session set.
type RedisStore struct {
	client     *redis.Client
	namespace  string
	defaultTTL time.Duration
}

// NewRedisStore connects to Redis and verifies the connection before
// returning. An empty namespace defaults to "souqna:sessions".
func NewRedisStore(redisURL, namespace string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if namespace == "" {
		namespace = "souqna:sessions"
	}

	return &RedisStore{
		client:     client,
		namespace:  namespace,
		defaultTTL: DefaultTTL,
	}, nil
}

// Touch marks the session as active and resets its expiry.
func (r *RedisStore) Touch(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = r.defaultTTL
	}

	if err := r.client.Set(ctx, r.buildKey(sessionID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// Active reports whether the session id is still live.
func (r *RedisStore) Active(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.buildKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}

// Forget drops the session id.
func (r *RedisStore) Forget(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.buildKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to forget session: %w", err)
	}
	return nil
}

func (r *RedisStore) buildKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.namespace, sessionID)
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// InMemoryStore implements Store with a process-local map. It is the
// default when no Redis URL is configured.
type InMemoryStore struct {
	data       map[string]time.Time
	defaultTTL time.Duration
	now        func() time.Time
	mu         sync.RWMutex
}

// NewInMemoryStore creates an in-process store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		data:       make(map[string]time.Time),
		defaultTTL: DefaultTTL,
		now:        time.Now,
	}
}

// Touch marks the session as active and resets its expiry.
func (m *InMemoryStore) Touch(ctx context.Context, sessionID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ttl == 0 {
		ttl = m.defaultTTL
	}
	m.data[sessionID] = m.now().Add(ttl)
	return nil
}

// Active reports whether the session id is still live. Expired entries
// are dropped on read.
func (m *InMemoryStore) Active(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, exists := m.data[sessionID]
	if !exists {
		return false, nil
	}
	if m.now().After(expiry) {
		delete(m.data, sessionID)
		return false, nil
	}
	return true, nil
}

// Forget drops the session id.
func (m *InMemoryStore) Forget(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, sessionID)
	return nil
}

// Close is a no-op for the in-process store.
func (m *InMemoryStore) Close() error {
	return nil
}
