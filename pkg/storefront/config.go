package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/souqna/souqna/pkg/assistant"
	"github.com/souqna/souqna/pkg/ids"
	"github.com/souqna/souqna/pkg/logger"
	"github.com/souqna/souqna/pkg/memory"
)

// DefaultSessionTTL is how long an idle session survives before a
// cleanup sweep removes it.
const DefaultSessionTTL = 30 * time.Minute

// Config carries the collaborators shared by every session.
type Config struct {
	Logger           logger.Logger
	Generator        assistant.Generator
	IDs              ids.Generator
	Clock            func() time.Time
	SessionTTL       time.Duration
	Store            memory.Store
	Seed             Seed
	AssistantTimeout time.Duration
}

// Option configures a Manager.
type Option func(*Config)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithGenerator sets the assistant's external generation collaborator.
func WithGenerator(g assistant.Generator) Option {
	return func(c *Config) { c.Generator = g }
}

// WithIDGenerator sets the id generator for sessions, users and
// listings.
func WithIDGenerator(g ids.Generator) Option {
	return func(c *Config) { c.IDs = g }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Clock = now }
}

// WithSessionTTL sets the idle lifetime of a session.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *Config) { c.SessionTTL = ttl }
}

// WithMemoryStore sets the session-liveness store.
func WithMemoryStore(s memory.Store) Option {
	return func(c *Config) { c.Store = s }
}

// WithSeed sets the catalog seed every new session starts from.
func WithSeed(seed Seed) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithAssistantTimeout bounds each assistant call.
func WithAssistantTimeout(d time.Duration) Option {
	return func(c *Config) { c.AssistantTimeout = d }
}

func newConfig(opts ...Option) Config {
	cfg := Config{
		Logger:     &logger.NoOpLogger{},
		Generator:  unavailableGenerator{},
		IDs:        ids.NewUUIDGenerator(),
		Clock:      time.Now,
		SessionTTL: DefaultSessionTTL,
		Seed:       DefaultSeed(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Store == nil {
		cfg.Store = memory.NewInMemoryStore()
	}
	return cfg
}

// unavailableGenerator is the default when no external generator is
// configured. Every call fails, which the bridge turns into its fixed
// apology turn.
type unavailableGenerator struct{}

var errGeneratorUnavailable = errors.New("assistant generator not configured")

func (unavailableGenerator) GenerateReply(ctx context.Context, history []assistant.Turn, query string) (string, error) {
	return "", errGeneratorUnavailable
}

func (unavailableGenerator) SearchWithGrounding(ctx context.Context, query string) (string, []assistant.Source, error) {
	return "", nil, errGeneratorUnavailable
}
