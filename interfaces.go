// Package souqna re-exports the session core's primary types so
// embedding applications can depend on a single import path.
package souqna

import (
	"github.com/souqna/souqna/pkg/assistant"
	"github.com/souqna/souqna/pkg/logger"
	"github.com/souqna/souqna/pkg/memory"
	"github.com/souqna/souqna/pkg/storefront"
	"github.com/souqna/souqna/pkg/telemetry"
)

// Type aliases for the public surface
type Manager = storefront.Manager
type Session = storefront.Session
type Snapshot = storefront.Snapshot
type Seed = storefront.Seed
type Option = storefront.Option
type Generator = assistant.Generator
type Turn = assistant.Turn
type Source = assistant.Source
type Logger = logger.Logger
type MemoryStore = memory.Store
type Instrumentation = telemetry.Instrumentation

// NewManager creates a session manager; see package storefront for the
// available options.
func NewManager(opts ...Option) *Manager {
	return storefront.NewManager(opts...)
}
