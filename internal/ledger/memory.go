package ledger

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLog is an in-process Log for tests and ephemeral runs. It
// enforces the same append-only contract as the durable store.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []Entry
}

var _ Log = (*MemoryLog)(nil)

// NewMemoryLog returns an empty in-memory log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// AppendRecords implements Log. The batch must continue the stored
// sequence contiguously; on any mismatch nothing is stored.
func (m *MemoryLog) AppendRecords(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := uint64(len(m.entries)) + 1
	for _, e := range entries {
		if e.Seq != next {
			return fmt.Errorf("append: entry seq %d does not continue chain at %d", e.Seq, next)
		}
		next++
	}
	m.entries = append(m.entries, entries...)
	return nil
}

// ReadRecord implements Log.
func (m *MemoryLog) ReadRecord(_ context.Context, seq uint64) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if seq < 1 || seq > uint64(len(m.entries)) {
		return Entry{}, ErrNotFound
	}
	return m.entries[seq-1], nil
}

// ReadRange implements Log.
func (m *MemoryLog) ReadRange(_ context.Context, from, to uint64) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if from < 1 {
		from = 1
	}
	head := uint64(len(m.entries))
	if to == 0 || to > head {
		to = head
	}
	if from > to {
		return nil, nil
	}
	out := make([]Entry, to-from+1)
	copy(out, m.entries[from-1:to])
	return out, nil
}

// ReadHead implements Log.
func (m *MemoryLog) ReadHead(_ context.Context) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.entries) == 0 {
		return Entry{}, false, nil
	}
	return m.entries[len(m.entries)-1], true, nil
}

// Close implements Log.
func (m *MemoryLog) Close() error { return nil }
