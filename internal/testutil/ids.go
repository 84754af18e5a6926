package testutil

import (
	"fmt"
	"sync"
)

// IDSource hands out sequential identifiers for tests.
//
// Production code assigns UUIDv7 violation IDs; tests swap in an
// IDSource so recorded IDs are stable across runs and readable in
// assertions and golden files.
//
// Thread-safety: Next is safe for concurrent use via internal mutex.
type IDSource struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewIDSource creates an ID source with the given prefix.
//
// If prefix is empty, "test" is used.
func NewIDSource(prefix string) *IDSource {
	if prefix == "" {
		prefix = "test"
	}
	return &IDSource{prefix: prefix}
}

// Next returns the next identifier, formatted as prefix-0001, prefix-0002, ...
func (s *IDSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%04d", s.prefix, s.n)
}
