package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// EventType classifies what a ledger entry records.
type EventType string

const (
	EventViolationRecorded EventType = "VIOLATION_RECORDED"
	EventStatusChanged     EventType = "STATUS_CHANGED"
	EventReportGenerated   EventType = "REPORT_GENERATED"
	EventRulesLoaded       EventType = "RULES_LOADED"
)

// Valid reports whether the event type is a known value.
func (t EventType) Valid() bool {
	switch t {
	case EventViolationRecorded, EventStatusChanged, EventReportGenerated, EventRulesLoaded:
		return true
	}
	return false
}

// Actor identifies who caused an entry to be appended.
type Actor struct {
	ID    string
	Email string
}

// Entry is one sealed record in the hash chain. Seq, PrevDigest and
// Digest are assigned at append time; an entry is immutable afterward.
type Entry struct {
	Seq       uint64
	Timestamp time.Time
	EventType EventType
	Actor     Actor
	Payload   map[string]any

	PrevDigest string
	Digest     string
}

// Domain prefix for chain digests. The version suffix enables future
// algorithm migration.
const domainEntry = "jerp/ledger-entry/v1"

// GenesisDigest anchors the chain: the first entry's PrevDigest is
// always this value. It is the domain-separated hash of the literal
// "genesis", so an empty ledger has a well-known verifiable head.
var GenesisDigest = hashWithDomain(domainEntry, []byte("genesis"))

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EntryDigest computes the entry's chain digest from its sealed fields.
// The digest covers the previous digest, so altering any earlier entry
// invalidates every digest after it. Timestamps are hashed at UTC
// nanosecond precision. Returns an error if the payload cannot be
// canonically marshaled.
func EntryDigest(e Entry) (string, error) {
	body := map[string]any{
		"seq":         int64(e.Seq),
		"timestamp":   e.Timestamp.UTC().Format(time.RFC3339Nano),
		"event_type":  string(e.EventType),
		"actor_id":    e.Actor.ID,
		"actor_email": e.Actor.Email,
		"payload":     e.Payload,
		"prev_digest": e.PrevDigest,
	}
	canonical, err := MarshalCanonical(body)
	if err != nil {
		return "", fmt.Errorf("EntryDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(domainEntry, canonical), nil
}

// validateDraft checks the append-time preconditions for an entry that
// has not been sealed yet.
func validateDraft(eventType EventType, actor Actor, payload map[string]any) error {
	if !eventType.Valid() {
		return fmt.Errorf("unknown event type %q", eventType)
	}
	if actor.ID == "" {
		return fmt.Errorf("actor id is required")
	}
	if len(payload) == 0 {
		return fmt.Errorf("payload is required")
	}
	// Fail before sealing if the payload cannot be hashed.
	if _, err := MarshalCanonical(payload); err != nil {
		return fmt.Errorf("payload not canonicalizable: %w", err)
	}
	return nil
}
