package uuid

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// UUID hands out identifiers for sessions and document write tokens
type UUID interface {
	NewUUID() string
}

// DefaultUUID generates random version 4 UUIDs
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// Sequence returns predictable ids ("<prefix>-1", "<prefix>-2", ...) for tests
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

// NewUUID returns the next id in the sequence
func (s *Sequence) NewUUID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}
