package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Draft is an entry before sealing: everything the caller controls.
type Draft struct {
	EventType EventType
	Actor     Actor
	Payload   map[string]any
}

// Ledger appends drafts to a Log as a hash chain. A single mutex
// serializes appends so sequence numbers and digests extend the chain
// without gaps; reads go straight to the log.
type Ledger struct {
	mu  sync.Mutex
	log Log
	now func() time.Time

	// Chain position cache, loaded lazily from the log head.
	loaded     bool
	nextSeq    uint64
	headDigest string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New wraps a Log. The chain position is read from the log on first
// append, so reopening a durable log resumes its existing chain.
func New(log Log, opts ...Option) *Ledger {
	l := &Ledger{log: log, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Close closes the underlying log.
func (l *Ledger) Close() error {
	return l.log.Close()
}

// loadPosition initializes nextSeq and headDigest from the stored head.
// Caller holds l.mu.
func (l *Ledger) loadPosition(ctx context.Context) error {
	if l.loaded {
		return nil
	}
	head, ok, err := l.log.ReadHead(ctx)
	if err != nil {
		return &StorageError{Op: "read head", Err: err}
	}
	if ok {
		l.nextSeq = head.Seq + 1
		l.headDigest = head.Digest
	} else {
		l.nextSeq = 1
		l.headDigest = GenesisDigest
	}
	l.loaded = true
	return nil
}

// Append seals and persists a single draft. See AppendBatch.
func (l *Ledger) Append(ctx context.Context, draft Draft) (Entry, error) {
	entries, err := l.AppendBatch(ctx, []Draft{draft})
	if err != nil {
		return Entry{}, err
	}
	return entries[0], nil
}

// AppendBatch seals the drafts into consecutive chain entries and
// persists them in one atomic write. Either every draft lands or none
// does; the in-memory chain position only advances on success. All
// drafts in the batch share one timestamp.
func (l *Ledger) AppendBatch(ctx context.Context, drafts []Draft) ([]Entry, error) {
	if len(drafts) == 0 {
		return nil, fmt.Errorf("append: empty batch")
	}
	for i, d := range drafts {
		if err := validateDraft(d.EventType, d.Actor, d.Payload); err != nil {
			return nil, fmt.Errorf("append: draft %d: %w", i, err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.loadPosition(ctx); err != nil {
		return nil, err
	}

	ts := l.now().UTC()
	entries := make([]Entry, len(drafts))
	prev := l.headDigest
	seq := l.nextSeq
	for i, d := range drafts {
		e := Entry{
			Seq:        seq,
			Timestamp:  ts,
			EventType:  d.EventType,
			Actor:      d.Actor,
			Payload:    d.Payload,
			PrevDigest: prev,
		}
		digest, err := EntryDigest(e)
		if err != nil {
			return nil, fmt.Errorf("append: seal entry %d: %w", seq, err)
		}
		e.Digest = digest
		entries[i] = e
		prev = digest
		seq++
	}

	if err := l.log.AppendRecords(ctx, entries); err != nil {
		return nil, &StorageError{Op: "append records", Err: err}
	}

	l.nextSeq = seq
	l.headDigest = prev
	return entries, nil
}

// Read returns the entry at seq.
func (l *Ledger) Read(ctx context.Context, seq uint64) (Entry, error) {
	return l.log.ReadRecord(ctx, seq)
}

// ReadRange returns entries with from <= seq <= to in order. to == 0
// reads through the head.
func (l *Ledger) ReadRange(ctx context.Context, from, to uint64) ([]Entry, error) {
	return l.log.ReadRange(ctx, from, to)
}

// Head returns the latest entry. ok is false for an empty ledger.
func (l *Ledger) Head(ctx context.Context) (Entry, bool, error) {
	return l.log.ReadHead(ctx)
}

// Verify recomputes every digest from genesis through the head and
// checks the chain links. It returns the number of entries verified.
// On tampering it returns a ChainIntegrityError identifying the first
// invalid sequence; every digest after that point is untrusted.
func (l *Ledger) Verify(ctx context.Context) (int, error) {
	entries, err := l.log.ReadRange(ctx, 1, 0)
	if err != nil {
		return 0, &StorageError{Op: "read range", Err: err}
	}

	prev := GenesisDigest
	expectSeq := uint64(1)
	for _, e := range entries {
		if e.Seq != expectSeq {
			return 0, &ChainIntegrityError{
				Seq:    e.Seq,
				Reason: fmt.Sprintf("sequence gap: expected %d", expectSeq),
			}
		}
		if e.PrevDigest != prev {
			return 0, &ChainIntegrityError{
				Seq:      e.Seq,
				Reason:   "previous-digest link broken",
				Expected: prev,
				Actual:   e.PrevDigest,
			}
		}
		recomputed, err := EntryDigest(e)
		if err != nil {
			return 0, &ChainIntegrityError{Seq: e.Seq, Reason: fmt.Sprintf("entry not hashable: %v", err)}
		}
		if recomputed != e.Digest {
			return 0, &ChainIntegrityError{
				Seq:      e.Seq,
				Reason:   "stored digest does not match entry contents",
				Expected: recomputed,
				Actual:   e.Digest,
			}
		}
		prev = e.Digest
		expectSeq++
	}
	return len(entries), nil
}
