// Package violation defines the typed violation record produced by the
// rule engines and the status state machine governing its lifecycle.
//
// A Violation is the unit of record for the audit ledger: once recorded,
// its identity and content fields (kind, regulation, entity reference,
// detection timestamp, computed impact) are immutable. Only the lifecycle
// fields (status, assignee, resolution) change, and every change is
// itself appended to the ledger rather than rewriting history.
package violation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind categorizes which regulation family detected the violation.
type Kind string

const (
	KindLaborLaw  Kind = "LABOR_LAW"
	KindFinancial Kind = "FINANCIAL"
)

// Severity scales how urgently a violation needs attention. The report
// package maps severities to configurable score penalties.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Status is the lifecycle state of a violation record.
//
// Allowed transitions:
//
//	OPEN -> IN_PROGRESS -> RESOLVED
//	OPEN | IN_PROGRESS  -> DISMISSED
//
// RESOLVED and DISMISSED are terminal for the record. Re-opening requires
// a new record whose Supersedes field references the old one.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusDismissed  Status = "DISMISSED"
)

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

// Valid reports whether s is one of the defined lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// Violation is a detected compliance breach.
//
// Engines construct violations with the content fields populated; the
// compliance service assigns ID, Seq and Status when the violation is
// recorded. Impact is nil when the breach has no computable monetary
// effect (e.g. a classification finding).
type Violation struct {
	ID  string // assigned at record time, UUIDv7
	Seq int64  // ledger position of the creating entry

	Kind        Kind
	Regulation  string // e.g. "CA_LABOR_CODE_512", "IFRS_IAS2"
	Severity    Severity
	Description string
	EntityType  string // e.g. "shift", "posting"
	EntityID    string
	Impact      *decimal.Decimal
	DetectedAt  time.Time

	Status         Status
	Assignee       string
	ResolutionNote string
	ResolvedAt     *time.Time

	// Supersedes references a terminal record this one re-opens.
	Supersedes string
}

// ImpactOrZero returns the financial impact, treating nil as zero.
// Aggregation convenience; engines themselves never default an unset
// impact to zero.
func (v *Violation) ImpactOrZero() decimal.Decimal {
	if v.Impact == nil {
		return decimal.Zero
	}
	return *v.Impact
}

// transitions enumerates the legal state machine edges.
var transitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusDismissed},
	StatusInProgress: {StatusResolved, StatusDismissed},
}

// CanTransition reports whether the edge from -> to is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition applies a lifecycle change to the record in place.
//
// Rules enforced:
//   - the edge must be legal per the state machine above
//   - every transition requires a non-empty actor
//   - RESOLVED and DISMISSED require a non-empty resolution note
//
// The caller (compliance service) is responsible for appending the
// resulting snapshot to the ledger; Transition only mutates the logical
// record.
func (v *Violation) Transition(to Status, actor, note string, at time.Time) error {
	if !to.Valid() {
		return &TransitionError{ViolationID: v.ID, From: v.Status, To: to, Reason: "unknown status"}
	}
	if v.Status.Terminal() {
		return &TransitionError{ViolationID: v.ID, From: v.Status, To: to, Reason: "record is terminal"}
	}
	if !CanTransition(v.Status, to) {
		return &TransitionError{ViolationID: v.ID, From: v.Status, To: to, Reason: "transition not permitted"}
	}
	if actor == "" {
		return &TransitionError{ViolationID: v.ID, From: v.Status, To: to, Reason: "actor is required"}
	}
	if to.Terminal() && note == "" {
		return &TransitionError{ViolationID: v.ID, From: v.Status, To: to, Reason: "resolution note is required"}
	}

	v.Status = to
	v.Assignee = actor
	if to.Terminal() {
		v.ResolutionNote = note
		t := at
		v.ResolvedAt = &t
	}
	return nil
}
