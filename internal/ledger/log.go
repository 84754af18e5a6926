package ledger

import "context"

// Log is the storage contract for sealed entries. Implementations must
// be append-only: AppendRecords either persists the whole batch or none
// of it, and persisted entries are never modified.
type Log interface {
	// AppendRecords persists a batch of sealed entries atomically.
	// Entries arrive with contiguous sequence numbers continuing the
	// stored chain.
	AppendRecords(ctx context.Context, entries []Entry) error

	// ReadRecord returns the entry at seq, or ErrNotFound.
	ReadRecord(ctx context.Context, seq uint64) (Entry, error)

	// ReadRange returns entries with from <= seq <= to in sequence
	// order. to == 0 means "through the head".
	ReadRange(ctx context.Context, from, to uint64) ([]Entry, error)

	// ReadHead returns the highest-sequence entry. ok is false when
	// the log is empty.
	ReadHead(ctx context.Context) (entry Entry, ok bool, err error)

	Close() error
}
