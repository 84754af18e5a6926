package labor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
)

func completeRecords() RecordKeepingFact {
	return RecordKeepingFact{
		EmployeeID:            "emp-1",
		HasName:               true,
		HasAddress:            true,
		HasSSN:                true,
		HasBirthDate:          true,
		HasOccupation:         true,
		HasHourlyRate:         true,
		HasHoursWorkedRecords: true,
		HasWagesPaidRecords:   true,
	}
}

func TestCheckRecordKeeping_AllRecordsPresent(t *testing.T) {
	set := rules.DefaultSet()

	missing, violations, err := CheckRecordKeeping(completeRecords(), set)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Empty(t, violations)
}

func TestCheckRecordKeeping_MissingRecords(t *testing.T) {
	set := rules.DefaultSet()
	fact := completeRecords()
	fact.HasAddress = false
	fact.HasSSN = false
	fact.HasHoursWorkedRecords = false

	missing, violations, err := CheckRecordKeeping(fact, set)
	require.NoError(t, err)
	require.Len(t, missing, 3)

	joined := strings.ToLower(strings.Join(missing, " "))
	assert.Contains(t, joined, "address")
	assert.Contains(t, joined, "social security")
	assert.Contains(t, joined, "hours worked")

	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, "FLSA_211", v.Regulation)
	assert.Equal(t, "emp-1", v.EntityID)
	assert.Contains(t, v.Description, "social security number")
	assert.Nil(t, v.Impact)
}

func TestCheckRecordKeeping_AllRecordsMissing(t *testing.T) {
	set := rules.DefaultSet()
	fact := RecordKeepingFact{EmployeeID: "emp-2"}

	missing, violations, err := CheckRecordKeeping(fact, set)
	require.NoError(t, err)
	assert.Len(t, missing, 8)
	require.Len(t, violations, 1)
}

func TestCheckRecordKeeping_RequiresEmployeeID(t *testing.T) {
	set := rules.DefaultSet()
	fact := completeRecords()
	fact.EmployeeID = ""

	_, _, err := CheckRecordKeeping(fact, set)
	require.Error(t, err)
	assert.True(t, compliance.IsValidationError(err))
}

func TestCheckRecordKeeping_RequiresRule(t *testing.T) {
	_, _, err := CheckRecordKeeping(completeRecords(), rules.NewSet())
	require.Error(t, err)
	assert.True(t, rules.IsConfigError(err))
}
