// Package idgen provides identifier generators for registry entities.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces identifiers that are unique for the lifetime of the process.
type Generator interface {
	// NewID returns a fresh identifier. It never returns the same value twice.
	NewID() string
}

// UUID generates random 128-bit identifiers.
type UUID struct{}

// NewUUID creates a random UUID generator.
func NewUUID() UUID {
	return UUID{}
}

// NewID returns a random (version 4) UUID string.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates prefixed, monotonically increasing identifiers.
// Useful where deterministic ids matter, e.g. in tests.
type Sequence struct {
	prefix string
	next   atomic.Uint64
}

// NewSequence creates a sequence generator. Ids look like "<prefix>-1", "<prefix>-2", ...
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	n := s.next.Add(1)
	if s.prefix == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s-%d", s.prefix, n)
}
