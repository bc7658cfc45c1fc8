package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/souqna/souqna/pkg/logger"
	"github.com/souqna/souqna/pkg/memory"
)

// Manager owns the live sessions keyed by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cfg    Config
	store  memory.Store
	logger logger.Logger
}

// NewManager creates a session manager from the given options.
func NewManager(opts ...Option) *Manager {
	cfg := newConfig(opts...)
	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		store:    cfg.Store,
		logger:   cfg.Logger,
	}
}

// Create starts a fresh session seeded with the configured marketplace
// content and journals it as live.
func (m *Manager) Create(ctx context.Context) *Session {
	s := newSession(m.cfg.IDs.New(), m.cfg)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if err := m.store.Touch(ctx, s.ID, m.cfg.SessionTTL); err != nil {
		m.logger.Warn("Failed to journal session", map[string]interface{}{
			"operation":  "session_create",
			"session_id": s.ID,
			"error":      err.Error(),
		})
	}

	m.logger.Info("Session created", map[string]interface{}{
		"operation":  "session_create",
		"session_id": s.ID,
	})
	return s
}

// Get returns the session with the given id and refreshes its liveness
// record.
func (m *Manager) Get(ctx context.Context, id string) (*Session, bool) {
	m.mu.RLock()
	s, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if err := m.store.Touch(ctx, id, m.cfg.SessionTTL); err != nil {
		m.logger.Warn("Failed to refresh session record", map[string]interface{}{
			"operation":  "session_get",
			"session_id": id,
			"error":      err.Error(),
		})
	}
	return s, true
}

// Remove drops the session and its liveness record. Removing an unknown
// id is a no-op.
func (m *Manager) Remove(ctx context.Context, id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if err := m.store.Forget(ctx, id); err != nil {
		m.logger.Warn("Failed to forget session record", map[string]interface{}{
			"operation":  "session_remove",
			"session_id": id,
			"error":      err.Error(),
		})
	}
}

// CleanupExpired removes sessions idle longer than the configured TTL
// and returns how many were dropped.
func (m *Manager) CleanupExpired(ctx context.Context) int {
	cutoff := m.cfg.Clock().Add(-m.cfg.SessionTTL)

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		if err := m.store.Forget(ctx, id); err != nil {
			m.logger.Warn("Failed to forget session record", map[string]interface{}{
				"operation":  "session_cleanup",
				"session_id": id,
				"error":      err.Error(),
			})
		}
	}

	if len(expired) > 0 {
		m.logger.Info("Expired sessions removed", map[string]interface{}{
			"operation": "session_cleanup",
			"count":     len(expired),
		})
	}
	return len(expired)
}

// CleanupLoop sweeps expired sessions at the given interval until the
// context is done.
func (m *Manager) CleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CleanupExpired(ctx)
		}
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close releases the liveness store.
func (m *Manager) Close() error {
	return m.store.Close()
}
