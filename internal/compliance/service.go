package compliance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JERPCorporation/jerp-compliance/internal/ledger"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// ErrNotFound is returned when a violation ID is unknown.
var ErrNotFound = errors.New("violation not found")

// Service owns the violation lifecycle. All writes flow through the
// ledger first; the in-memory index is a replayable cache.
type Service struct {
	mu     sync.RWMutex
	ledger *ledger.Ledger
	now    func() time.Time
	newID  func() string

	byID map[string]*violation.Violation
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the detection timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDSource overrides violation ID generation. Intended for tests.
func WithIDSource(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService wraps a ledger and rebuilds the violation index by
// replaying every stored entry.
func NewService(ctx context.Context, l *ledger.Ledger, opts ...Option) (*Service, error) {
	s := &Service{
		ledger: l,
		now:    time.Now,
		newID:  func() string { return uuid.Must(uuid.NewV7()).String() },
		byID:   make(map[string]*violation.Violation),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.replay(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// replay rebuilds the index from the ledger. Entries the service did
// not write (report events) are skipped.
func (s *Service) replay(ctx context.Context) error {
	entries, err := s.ledger.ReadRange(ctx, 1, 0)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	for _, entry := range entries {
		switch entry.EventType {
		case ledger.EventViolationRecorded:
			v, err := violationFromPayload(entry)
			if err != nil {
				return fmt.Errorf("replay: %w", err)
			}
			s.byID[v.ID] = &v
		case ledger.EventStatusChanged:
			if err := s.replayStatusChange(entry); err != nil {
				return fmt.Errorf("replay: %w", err)
			}
		}
	}
	return nil
}

func (s *Service) replayStatusChange(entry ledger.Entry) error {
	id, _ := entry.Payload["violation_id"].(string)
	to, _ := entry.Payload["to"].(string)
	note, _ := entry.Payload["note"].(string)
	v, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("entry %d: status change for unknown violation %q", entry.Seq, id)
	}
	return v.Transition(violation.Status(to), entry.Actor.ID, note, entry.Timestamp)
}

// RecordViolation seals one engine-produced candidate into the ledger
// and returns the stored record with ID, Seq, Status and DetectedAt
// assigned.
func (s *Service) RecordViolation(ctx context.Context, v violation.Violation, actor ledger.Actor) (violation.Violation, error) {
	recorded, err := s.RecordAll(ctx, []violation.Violation{v}, actor)
	if err != nil {
		return violation.Violation{}, err
	}
	return recorded[0], nil
}

// RecordAll seals a batch of candidates in one atomic ledger append.
// Either every violation is recorded or none is. Engines typically
// produce several violations per evaluated fact; recording them
// together keeps the audit trail aligned with the evaluation.
func (s *Service) RecordAll(ctx context.Context, vs []violation.Violation, actor ledger.Actor) ([]violation.Violation, error) {
	if len(vs) == 0 {
		return nil, Invalid("violations", "", "batch is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	detectedAt := s.now().UTC()
	sealed := make([]violation.Violation, len(vs))
	drafts := make([]ledger.Draft, len(vs))
	for i, v := range vs {
		if err := validateCandidate(v); err != nil {
			return nil, err
		}
		if v.ID == "" {
			v.ID = s.newID()
		} else if _, exists := s.byID[v.ID]; exists {
			return nil, Invalid("violations.id", v.ID, "already recorded")
		}
		if v.Supersedes != "" {
			prior, ok := s.byID[v.Supersedes]
			if !ok {
				return nil, Invalid("violations.supersedes", v.Supersedes, "references unknown violation")
			}
			if !prior.Status.Terminal() {
				return nil, Invalid("violations.supersedes", v.Supersedes, "superseded violation is not terminal")
			}
		}
		v.Status = violation.StatusOpen
		v.DetectedAt = detectedAt
		sealed[i] = v
		drafts[i] = ledger.Draft{
			EventType: ledger.EventViolationRecorded,
			Actor:     actor,
			Payload:   violationPayload(v),
		}
	}

	entries, err := s.ledger.AppendBatch(ctx, drafts)
	if err != nil {
		return nil, err
	}
	for i := range sealed {
		sealed[i].Seq = int64(entries[i].Seq)
		stored := sealed[i]
		s.byID[stored.ID] = &stored
	}
	return sealed, nil
}

// validateCandidate checks engine output before it becomes a record.
func validateCandidate(v violation.Violation) error {
	switch v.Kind {
	case violation.KindLaborLaw, violation.KindFinancial:
	default:
		return Invalid("violations.kind", string(v.Kind), "unknown kind")
	}
	if v.Regulation == "" {
		return Invalid("violations.regulation", "", "is required")
	}
	switch v.Severity {
	case violation.SeverityLow, violation.SeverityMedium, violation.SeverityHigh, violation.SeverityCritical:
	default:
		return Invalid("violations.severity", string(v.Severity), "unknown severity")
	}
	if v.Description == "" {
		return Invalid("violations.description", "", "is required")
	}
	if v.EntityID == "" {
		return Invalid("violations.entityId", "", "is required")
	}
	return nil
}

// Transition moves a violation to a new lifecycle state and appends the
// change to the ledger. The index only mutates after the entry lands.
func (s *Service) Transition(ctx context.Context, id string, to violation.Status, actor ledger.Actor, note string) (violation.Violation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[id]
	if !ok {
		return violation.Violation{}, fmt.Errorf("transition %q: %w", id, ErrNotFound)
	}

	next := *current
	from := next.Status
	if err := next.Transition(to, actor.ID, note, s.now().UTC()); err != nil {
		return violation.Violation{}, err
	}

	_, err := s.ledger.Append(ctx, ledger.Draft{
		EventType: ledger.EventStatusChanged,
		Actor:     actor,
		Payload:   statusChangePayload(next, from, note),
	})
	if err != nil {
		return violation.Violation{}, err
	}

	*current = next
	return next, nil
}

// Get returns the violation with the given ID.
func (s *Service) Get(id string) (violation.Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byID[id]
	if !ok {
		return violation.Violation{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return *v, nil
}

// Query filters violations. Zero-valued fields match everything.
type Query struct {
	Kind       violation.Kind
	Status     violation.Status
	Severity   violation.Severity
	Regulation string
	EntityID   string

	// AfterSeq and Limit page through results in ledger order.
	AfterSeq int64
	Limit    int
}

func (q Query) matches(v *violation.Violation) bool {
	if q.Kind != "" && v.Kind != q.Kind {
		return false
	}
	if q.Status != "" && v.Status != q.Status {
		return false
	}
	if q.Severity != "" && v.Severity != q.Severity {
		return false
	}
	if q.Regulation != "" && v.Regulation != q.Regulation {
		return false
	}
	if q.EntityID != "" && v.EntityID != q.EntityID {
		return false
	}
	return v.Seq > q.AfterSeq
}

// QueryViolations returns matching violations ordered by ledger
// sequence. The result is a snapshot; mutating it does not affect the
// service.
func (s *Service) QueryViolations(q Query) []violation.Violation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []violation.Violation
	for _, v := range s.byID {
		if q.matches(v) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}
