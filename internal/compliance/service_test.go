package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JERPCorporation/jerp-compliance/internal/ledger"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/testutil"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

func testClock() func() time.Time {
	return testutil.NewClock(time.Date(2026, 3, 2, 9, 0, 1, 0, time.UTC), time.Second).Now
}

func testIDs() func() string {
	return testutil.NewIDSource("v").Next
}

func newTestService(t *testing.T) (*Service, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(ledger.NewMemoryLog(), ledger.WithClock(testClock()))
	s, err := NewService(context.Background(), l,
		WithClock(testClock()), WithIDSource(testIDs()))
	require.NoError(t, err)
	return s, l
}

func inspector() ledger.Actor {
	return ledger.Actor{ID: "inspector-7", Email: "inspector@example.com"}
}

func candidate(regulation string) violation.Violation {
	impact := money.MustParse("52.00")
	return violation.Violation{
		Kind:        violation.KindLaborLaw,
		Regulation:  regulation,
		Severity:    violation.SeverityHigh,
		Description: "wage below statutory minimum",
		EntityType:  "shift",
		EntityID:    "shift-99",
		Impact:      &impact,
	}
}

func TestRecordViolation_AssignsIdentity(t *testing.T) {
	s, l := newTestService(t)
	ctx := context.Background()

	recorded, err := s.RecordViolation(ctx, candidate("CA_LABOR_1182"), inspector())
	require.NoError(t, err)

	assert.Equal(t, "v-0001", recorded.ID)
	assert.Equal(t, int64(1), recorded.Seq)
	assert.Equal(t, violation.StatusOpen, recorded.Status)
	assert.False(t, recorded.DetectedAt.IsZero())

	head, ok, err := l.Head(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ledger.EventViolationRecorded, head.EventType)
	assert.Equal(t, "inspector-7", head.Actor.ID)
	assert.Equal(t, "inspector@example.com", head.Actor.Email)
	assert.Equal(t, "v-0001", head.Payload["violation_id"])
	assert.Equal(t, "52.00", head.Payload["impact"])
}

func TestRecordViolation_DefaultIDsAreUUIDv7(t *testing.T) {
	l := ledger.New(ledger.NewMemoryLog(), ledger.WithClock(testClock()))
	s, err := NewService(context.Background(), l, WithClock(testClock()))
	require.NoError(t, err)

	recorded, err := s.RecordViolation(context.Background(), candidate("FLSA_206"), inspector())
	require.NoError(t, err)

	parsed, err := uuid.Parse(recorded.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRecordAll_AtomicBatch(t *testing.T) {
	s, l := newTestService(t)
	ctx := context.Background()

	bad := candidate("FLSA_207")
	bad.Description = ""
	_, err := s.RecordAll(ctx, []violation.Violation{candidate("CA_LABOR_CODE_510"), bad}, inspector())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// The good candidate must not have landed.
	_, ok, err := l.Head(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, s.QueryViolations(Query{}))

	recorded, err := s.RecordAll(ctx, []violation.Violation{
		candidate("CA_LABOR_CODE_510"), candidate("CA_LABOR_CODE_512"),
	}, inspector())
	require.NoError(t, err)
	require.Len(t, recorded, 2)
	assert.Equal(t, int64(1), recorded[0].Seq)
	assert.Equal(t, int64(2), recorded[1].Seq)
}

func TestRecordViolation_RejectsBadCandidates(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	for name, mutate := range map[string]func(*violation.Violation){
		"unknown kind":     func(v *violation.Violation) { v.Kind = "COSMIC" },
		"no regulation":    func(v *violation.Violation) { v.Regulation = "" },
		"unknown severity": func(v *violation.Violation) { v.Severity = "SHRUG" },
		"no description":   func(v *violation.Violation) { v.Description = "" },
		"no entity":        func(v *violation.Violation) { v.EntityID = "" },
	} {
		t.Run(name, func(t *testing.T) {
			v := candidate("FLSA_206")
			mutate(&v)
			_, err := s.RecordViolation(ctx, v, inspector())
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestTransition_AppendsLedgerEntry(t *testing.T) {
	s, l := newTestService(t)
	ctx := context.Background()

	recorded, err := s.RecordViolation(ctx, candidate("FLSA_207"), inspector())
	require.NoError(t, err)

	inProgress, err := s.Transition(ctx, recorded.ID, violation.StatusInProgress, inspector(), "")
	require.NoError(t, err)
	assert.Equal(t, violation.StatusInProgress, inProgress.Status)
	assert.Equal(t, "inspector-7", inProgress.Assignee)

	resolved, err := s.Transition(ctx, recorded.ID, violation.StatusResolved, inspector(), "back pay issued")
	require.NoError(t, err)
	assert.Equal(t, violation.StatusResolved, resolved.Status)
	assert.Equal(t, "back pay issued", resolved.ResolutionNote)
	require.NotNil(t, resolved.ResolvedAt)

	head, ok, err := l.Head(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(3), head.Seq)
	assert.Equal(t, ledger.EventStatusChanged, head.EventType)
	assert.Equal(t, "IN_PROGRESS", head.Payload["from"])
	assert.Equal(t, "RESOLVED", head.Payload["to"])
	assert.Equal(t, "back pay issued", head.Payload["note"])
}

func TestTransition_IllegalEdgeLeavesNoTrace(t *testing.T) {
	s, l := newTestService(t)
	ctx := context.Background()

	recorded, err := s.RecordViolation(ctx, candidate("FLSA_207"), inspector())
	require.NoError(t, err)

	// OPEN cannot jump straight to RESOLVED.
	_, err = s.Transition(ctx, recorded.ID, violation.StatusResolved, inspector(), "done")
	require.Error(t, err)
	assert.True(t, violation.IsTransitionError(err))

	head, ok, err := l.Head(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(1), head.Seq)

	got, err := s.Get(recorded.ID)
	require.NoError(t, err)
	assert.Equal(t, violation.StatusOpen, got.Status)
}

func TestTransition_UnknownViolation(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Transition(context.Background(), "nope", violation.StatusInProgress, inspector(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSupersedes_RequiresTerminalPrior(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	recorded, err := s.RecordViolation(ctx, candidate("FLSA_206"), inspector())
	require.NoError(t, err)

	reopened := candidate("FLSA_206")
	reopened.Supersedes = recorded.ID
	_, err = s.RecordViolation(ctx, reopened, inspector())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = s.Transition(ctx, recorded.ID, violation.StatusInProgress, inspector(), "")
	require.NoError(t, err)
	_, err = s.Transition(ctx, recorded.ID, violation.StatusDismissed, inspector(), "duplicate filing")
	require.NoError(t, err)

	record2, err := s.RecordViolation(ctx, reopened, inspector())
	require.NoError(t, err)
	assert.Equal(t, recorded.ID, record2.Supersedes)

	_, err = s.RecordViolation(ctx, violation.Violation{
		Kind: violation.KindLaborLaw, Regulation: "FLSA_206",
		Severity: violation.SeverityLow, Description: "x",
		EntityType: "shift", EntityID: "s", Supersedes: "ghost",
	}, inspector())
	require.Error(t, err)
}

func TestReplay_RebuildsStateFromLedger(t *testing.T) {
	ctx := context.Background()
	log := ledger.NewMemoryLog()
	l := ledger.New(log, ledger.WithClock(testClock()))

	s, err := NewService(ctx, l, WithClock(testClock()), WithIDSource(testIDs()))
	require.NoError(t, err)

	first, err := s.RecordViolation(ctx, candidate("CA_LABOR_CODE_510"), inspector())
	require.NoError(t, err)
	_, err = s.RecordViolation(ctx, candidate("GAAP_BALANCE"), inspector())
	require.NoError(t, err)
	_, err = s.Transition(ctx, first.ID, violation.StatusInProgress, inspector(), "")
	require.NoError(t, err)
	_, err = s.Transition(ctx, first.ID, violation.StatusResolved, inspector(), "premium paid")
	require.NoError(t, err)

	// A fresh service over the same log sees identical state.
	rebuilt, err := NewService(ctx, ledger.New(log, ledger.WithClock(testClock())))
	require.NoError(t, err)

	want := s.QueryViolations(Query{})
	got := rebuilt.QueryViolations(Query{})
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Status, got[i].Status)
		assert.Equal(t, want[i].Regulation, got[i].Regulation)
		assert.Equal(t, want[i].Seq, got[i].Seq)
		assert.Equal(t, want[i].ImpactOrZero().String(), got[i].ImpactOrZero().String())
	}

	restored, err := rebuilt.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, violation.StatusResolved, restored.Status)
	assert.Equal(t, "premium paid", restored.ResolutionNote)
}

func TestQueryViolations_FiltersAndPaging(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	labor := candidate("CA_LABOR_CODE_510")
	financial := candidate("IFRS_IAS2")
	financial.Kind = violation.KindFinancial
	financial.Severity = violation.SeverityCritical
	financial.EntityType = "posting"
	financial.EntityID = "posting-3"

	recorded, err := s.RecordAll(ctx, []violation.Violation{labor, financial, candidate("CA_LABOR_CODE_510")}, inspector())
	require.NoError(t, err)

	_, err = s.Transition(ctx, recorded[0].ID, violation.StatusInProgress, inspector(), "")
	require.NoError(t, err)

	assert.Len(t, s.QueryViolations(Query{}), 3)
	assert.Len(t, s.QueryViolations(Query{Kind: violation.KindFinancial}), 1)
	assert.Len(t, s.QueryViolations(Query{Status: violation.StatusOpen}), 2)
	assert.Len(t, s.QueryViolations(Query{Regulation: "CA_LABOR_CODE_510"}), 2)
	assert.Len(t, s.QueryViolations(Query{EntityID: "posting-3"}), 1)
	assert.Len(t, s.QueryViolations(Query{Severity: violation.SeverityCritical}), 1)

	// Page in ledger order.
	page := s.QueryViolations(Query{Limit: 2})
	require.Len(t, page, 2)
	assert.Equal(t, int64(1), page[0].Seq)
	assert.Equal(t, int64(2), page[1].Seq)

	next := s.QueryViolations(Query{AfterSeq: page[1].Seq, Limit: 2})
	require.Len(t, next, 1)
	assert.Equal(t, int64(3), next[0].Seq)
}
