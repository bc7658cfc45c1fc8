// Package ids provides identifier generation for marketplace entities.
//
// Identifier creation is a capability injected into the components that
// need it, so tests can supply deterministic ids while production code
// uses UUIDs.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique identifiers.
type Generator interface {
	// New returns a fresh unique identifier.
	New() string
}

// UUIDGenerator generates RFC 4122 UUIDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a UUID-backed generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// New returns a random UUID string.
func (g *UUIDGenerator) New() string {
	return uuid.New().String()
}

// Sequence generates predictable ids of the form "<prefix>-1", "<prefix>-2", ...
// It is intended for tests.
type Sequence struct {
	prefix string
	n      uint64
}

// NewSequence creates a sequential generator with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// New returns the next id in the sequence.
func (s *Sequence) New() string {
	n := atomic.AddUint64(&s.n, 1)
	return fmt.Sprintf("%s-%d", s.prefix, n)
}
