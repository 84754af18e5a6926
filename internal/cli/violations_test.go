package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolationsCommand_ListsAll(t *testing.T) {
	db := seedDB(t)

	out, _, err := execute(t, "--db", db, "violations")
	require.NoError(t, err)
	assert.Contains(t, out, "CA_LABOR_CODE_510")
	assert.Contains(t, out, "GAAP_BALANCE")
	assert.Contains(t, out, "employee/emp-7")
	assert.Contains(t, out, "$120.00")
}

func TestViolationsCommand_FilterByStatus(t *testing.T) {
	db := seedDB(t)

	out, _, err := execute(t, "--db", db, "violations", "--status", "RESOLVED")
	require.NoError(t, err)
	assert.Contains(t, out, "GAAP_BALANCE")
	assert.NotContains(t, out, "CA_LABOR_CODE_510")
}

func TestViolationsCommand_FilterByKind(t *testing.T) {
	db := seedDB(t)

	out, _, err := execute(t, "--db", db, "violations", "--kind", "LABOR_LAW")
	require.NoError(t, err)
	assert.Contains(t, out, "CA_LABOR_CODE_510")
	assert.NotContains(t, out, "GAAP_BALANCE")
}

func TestViolationsCommand_JSONOutput(t *testing.T) {
	db := seedDB(t)

	out, _, err := execute(t, "--db", db, "--format", "json", "violations")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   []violationRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)

	first := resp.Data[0]
	assert.Equal(t, "v-0001", first.ID)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, "LABOR_LAW", first.Kind)
	assert.Equal(t, "120.00", first.Impact)
	assert.Equal(t, "OPEN", first.Status)

	assert.Equal(t, "RESOLVED", resp.Data[1].Status)
}

func TestViolationsCommand_EmptyResult(t *testing.T) {
	db := seedDB(t)

	out, _, err := execute(t, "--db", db, "violations", "--regulation", "FLSA_207")
	require.NoError(t, err)
	assert.Equal(t, "no violations\n", out)
}

func TestViolationsCommand_RejectsBadFilters(t *testing.T) {
	db := seedDB(t)

	cases := []struct {
		name string
		args []string
	}{
		{"unknown status", []string{"--status", "SHRUG"}},
		{"unknown severity", []string{"--severity", "EXTREME"}},
		{"unknown kind", []string{"--kind", "TAX"}},
		{"negative after-seq", []string{"--after-seq", "-1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"--db", db, "violations"}, tc.args...)
			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}
