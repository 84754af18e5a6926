package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/ledger"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/testutil"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// seedDB builds a sqlite ledger with four entries: two recorded
// violations and the two status changes that resolve the second.
func seedDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	log, err := ledger.OpenSQLite(path)
	require.NoError(t, err)
	defer log.Close()

	clock := testutil.NewClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), time.Second)
	ids := testutil.NewIDSource("v")

	l := ledger.New(log, ledger.WithClock(clock.Now))
	svc, err := compliance.NewService(context.Background(), l,
		compliance.WithClock(clock.Now), compliance.WithIDSource(ids.Next))
	require.NoError(t, err)

	overtime := money.MustParse("120.00")
	imbalance := money.MustParse("42.50")
	actor := ledger.Actor{ID: "auditor-1", Email: "audit@jerp.example"}

	recorded, err := svc.RecordAll(context.Background(), []violation.Violation{
		{
			Kind:        violation.KindLaborLaw,
			Regulation:  "CA_LABOR_CODE_510",
			Severity:    violation.SeverityHigh,
			Description: "daily overtime unpaid",
			EntityType:  "employee",
			EntityID:    "emp-7",
			Impact:      &overtime,
		},
		{
			Kind:        violation.KindFinancial,
			Regulation:  "GAAP_BALANCE",
			Severity:    violation.SeverityCritical,
			Description: "balance sheet out of balance",
			EntityType:  "ledger",
			EntityID:    "gl-2026",
			Impact:      &imbalance,
		},
	}, actor)
	require.NoError(t, err)
	require.Len(t, recorded, 2)

	_, err = svc.Transition(context.Background(), recorded[1].ID,
		violation.StatusInProgress, actor, "")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), recorded[1].ID,
		violation.StatusResolved, actor, "restated")
	require.NoError(t, err)

	return path
}
