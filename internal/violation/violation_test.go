package violation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpen() *Violation {
	return &Violation{
		ID:          "v-1",
		Kind:        KindLaborLaw,
		Regulation:  "CA_LABOR_CODE_512",
		Severity:    SeverityHigh,
		Description: "missing meal break",
		EntityType:  "shift",
		EntityID:    "shift-42",
		DetectedAt:  time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC),
		Status:      StatusOpen,
	}
}

func TestTransition_HappyPath(t *testing.T) {
	v := newOpen()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, v.Transition(StatusInProgress, "hr-lead", "", now))
	assert.Equal(t, StatusInProgress, v.Status)
	assert.Equal(t, "hr-lead", v.Assignee)
	assert.Nil(t, v.ResolvedAt)

	require.NoError(t, v.Transition(StatusResolved, "hr-lead", "premium paid on next payslip", now))
	assert.Equal(t, StatusResolved, v.Status)
	assert.Equal(t, "premium paid on next payslip", v.ResolutionNote)
	require.NotNil(t, v.ResolvedAt)
	assert.Equal(t, now, *v.ResolvedAt)
}

func TestTransition_DismissFromOpen(t *testing.T) {
	v := newOpen()
	err := v.Transition(StatusDismissed, "auditor", "duplicate of v-0", time.Now())
	require.NoError(t, err)
	assert.True(t, v.Status.Terminal())
}

func TestTransition_TerminalRejectsFurtherChanges(t *testing.T) {
	v := newOpen()
	require.NoError(t, v.Transition(StatusDismissed, "auditor", "not applicable", time.Now()))

	for _, to := range []Status{StatusOpen, StatusInProgress, StatusResolved, StatusDismissed} {
		err := v.Transition(to, "auditor", "note", time.Now())
		require.Error(t, err, "terminal record must reject transition to %s", to)
		assert.True(t, IsTransitionError(err))
	}
}

func TestTransition_OpenCannotResolveDirectly(t *testing.T) {
	v := newOpen()
	err := v.Transition(StatusResolved, "hr-lead", "done", time.Now())
	require.Error(t, err)
	assert.True(t, IsTransitionError(err))
	assert.Equal(t, StatusOpen, v.Status, "failed transition must not mutate the record")
}

func TestTransition_RequiresActor(t *testing.T) {
	v := newOpen()
	err := v.Transition(StatusInProgress, "", "", time.Now())
	require.Error(t, err)
}

func TestTransition_TerminalRequiresNote(t *testing.T) {
	v := newOpen()
	require.NoError(t, v.Transition(StatusInProgress, "hr-lead", "", time.Now()))
	err := v.Transition(StatusResolved, "hr-lead", "", time.Now())
	require.Error(t, err)
	assert.Equal(t, StatusInProgress, v.Status)
}

func TestTransition_UnknownStatus(t *testing.T) {
	v := newOpen()
	err := v.Transition(Status("ESCALATED"), "hr-lead", "", time.Now())
	require.Error(t, err)
}

func TestCanTransition_Table(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusDismissed, true},
		{StatusOpen, StatusResolved, false},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusDismissed, true},
		{StatusInProgress, StatusOpen, false},
		{StatusResolved, StatusOpen, false},
		{StatusDismissed, StatusInProgress, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestImpactOrZero_Nil(t *testing.T) {
	v := newOpen()
	assert.True(t, v.ImpactOrZero().IsZero())
}
