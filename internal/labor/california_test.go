package labor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

func caShift(hours, rate string) ShiftFact {
	return ShiftFact{
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ShiftID:         "shift-1",
		Hours:           money.MustParse(hours),
		Rate:            money.MustParse(rate),
		WorkweekDay:     1,
		MealBreaksTaken: 2,
		RestBreaksTaken: 3,
		Jurisdiction:    JurisdictionCalifornia,
	}
}

func TestEvaluateShift_RegularHoursOnly(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	res, violations, err := engine.EvaluateShift(caShift("8", "20.00"), set)
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Equal(t, "8.00", money.FormatHours(res.RegularHours))
	assert.True(t, res.OvertimeHours.IsZero())
	assert.True(t, res.DoubleTimeHours.IsZero())
	assert.Equal(t, "160.00", money.FormatCurrency(res.TotalPay))
}

func TestEvaluateShift_DailyOvertime(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	// 10 hours at $20: 8h regular, 2h at 1.5x, total $220.00.
	fact := caShift("10", "20.00")
	fact.MealBreaksTaken = 1 // one required for a 10h shift
	fact.RestBreaksTaken = 2

	res, violations, err := engine.EvaluateShift(fact, set)
	require.NoError(t, err)
	assert.Empty(t, violations)
	assert.Equal(t, "8.00", money.FormatHours(res.RegularHours))
	assert.Equal(t, "2.00", money.FormatHours(res.OvertimeHours))
	assert.True(t, res.DoubleTimeHours.IsZero())
	assert.Equal(t, "160.00", money.FormatCurrency(res.RegularPay))
	assert.Equal(t, "60.00", money.FormatCurrency(res.OvertimePay))
	assert.Equal(t, "220.00", money.FormatCurrency(res.TotalPay))
}

func TestEvaluateShift_DoubleTime(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	// 14 hours: 8 regular, 4 at 1.5x, 2 at 2x.
	fact := caShift("14", "20.00")
	res, _, err := engine.EvaluateShift(fact, set)
	require.NoError(t, err)
	assert.Equal(t, "8.00", money.FormatHours(res.RegularHours))
	assert.Equal(t, "4.00", money.FormatHours(res.OvertimeHours))
	assert.Equal(t, "2.00", money.FormatHours(res.DoubleTimeHours))
	assert.Equal(t, "160.00", money.FormatCurrency(res.RegularPay))
	assert.Equal(t, "120.00", money.FormatCurrency(res.OvertimePay))
	assert.Equal(t, "80.00", money.FormatCurrency(res.DoubleTimePay))
}

func TestEvaluateShift_SeventhDayOverridesDailyTiers(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	// Same 10 hours on the 7th consecutive day: first 8h at 1.5x, the
	// remainder at 2x. Never stacked with the standard tiers.
	fact := caShift("10", "20.00")
	fact.WorkweekDay = 7
	fact.MealBreaksTaken = 1
	fact.RestBreaksTaken = 2

	res, _, err := engine.EvaluateShift(fact, set)
	require.NoError(t, err)
	assert.True(t, res.RegularHours.IsZero())
	assert.Equal(t, "8.00", money.FormatHours(res.OvertimeHours))
	assert.Equal(t, "2.00", money.FormatHours(res.DoubleTimeHours))
	assert.Equal(t, "240.00", money.FormatCurrency(res.OvertimePay))
	assert.Equal(t, "80.00", money.FormatCurrency(res.DoubleTimePay))
}

func TestEvaluateShift_SeventhDayUnderEightHours(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	fact := caShift("6", "20.00")
	fact.WorkweekDay = 7
	res, _, err := engine.EvaluateShift(fact, set)
	require.NoError(t, err)
	assert.True(t, res.RegularHours.IsZero())
	assert.Equal(t, "6.00", money.FormatHours(res.OvertimeHours))
	assert.True(t, res.DoubleTimeHours.IsZero())
}

func TestEvaluateShift_MealBreakViolation(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	// Over 10 hours requires two meal breaks; only one taken yields
	// exactly one violation at one regular-rate hour.
	fact := caShift("10.5", "20.00")
	fact.MealBreaksTaken = 1
	fact.RestBreaksTaken = 2

	res, violations, err := engine.EvaluateShift(fact, set)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, "CA_LABOR_CODE_512", v.Regulation)
	assert.Equal(t, violation.KindLaborLaw, v.Kind)
	require.NotNil(t, v.Impact)
	assert.Equal(t, "20.00", money.FormatCurrency(*v.Impact))
	assert.Equal(t, "20.00", money.FormatCurrency(res.MealPremium))
}

func TestEvaluateShift_NoMealBreakRequiredAtFiveHours(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	// Exactly 5 hours does not cross the >5h threshold.
	fact := caShift("5", "20.00")
	fact.MealBreaksTaken = 0
	fact.RestBreaksTaken = 1

	_, violations, err := engine.EvaluateShift(fact, set)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestEvaluateShift_RestBreakViolations(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	// 8 hours = two full 4-hour blocks, two rest breaks required.
	// None taken: two violations, one regular-rate hour each.
	fact := caShift("8", "20.00")
	fact.MealBreaksTaken = 1
	fact.RestBreaksTaken = 0

	res, violations, err := engine.EvaluateShift(fact, set)
	require.NoError(t, err)
	require.Len(t, violations, 2)
	for _, v := range violations {
		assert.Equal(t, "CA_LABOR_CODE_516", v.Regulation)
		require.NotNil(t, v.Impact)
		assert.Equal(t, "20.00", money.FormatCurrency(*v.Impact))
	}
	assert.Equal(t, "40.00", money.FormatCurrency(res.RestPremium))
	// Premiums feed the shift total.
	assert.Equal(t, "200.00", money.FormatCurrency(res.TotalPay))
}

func TestEvaluateShift_RestBreakPartialBlock(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	// 7.9 hours is one full block only.
	fact := caShift("7.9", "20.00")
	fact.RestBreaksTaken = 1
	fact.MealBreaksTaken = 1

	_, violations, err := engine.EvaluateShift(fact, set)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestEvaluateShift_MinimumWage_StateFloorGoverns(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	// $10 beats the federal floor but not California's; the violation
	// cites the governing state regulation.
	fact := caShift("8", "10.00")
	res, violations, err := engine.EvaluateShift(fact, set)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, "CA_LABOR_1182", v.Regulation)
	assert.Equal(t, violation.SeverityCritical, v.Severity)
	require.NotNil(t, v.Impact)
	// Shortfall: (16.50 - 10.00) x 8h = 52.00.
	assert.Equal(t, "52.00", money.FormatCurrency(*v.Impact))
	assert.Equal(t, "80.00", money.FormatCurrency(res.TotalPay))
}

func TestEvaluateShift_ValidationFailsFast(t *testing.T) {
	engine := &CaliforniaEngine{}
	set := rules.DefaultSet()

	negative := caShift("8", "20.00")
	negative.Hours = money.MustParse("-1")
	_, _, err := engine.EvaluateShift(negative, set)
	require.Error(t, err)
	assert.True(t, compliance.IsValidationError(err))

	noRate := caShift("8", "20.00")
	noRate.Rate = money.Zero
	_, _, err = engine.EvaluateShift(noRate, set)
	require.Error(t, err)
	assert.True(t, compliance.IsValidationError(err))

	badDay := caShift("8", "20.00")
	badDay.WorkweekDay = 8
	_, _, err = engine.EvaluateShift(badDay, set)
	require.Error(t, err)
	assert.True(t, compliance.IsValidationError(err))
}

func TestEvaluateShift_MissingRuleRefusesEvaluation(t *testing.T) {
	engine := &CaliforniaEngine{}
	// A set without the daily overtime rule must refuse to evaluate
	// rather than fall back to hardcoded tiers.
	set := rules.NewSet()

	_, _, err := engine.EvaluateShift(caShift("8", "20.00"), set)
	require.Error(t, err)
	assert.True(t, rules.IsConfigError(err))
}

func TestForJurisdiction(t *testing.T) {
	ca, err := ForJurisdiction(JurisdictionCalifornia)
	require.NoError(t, err)
	assert.IsType(t, &CaliforniaEngine{}, ca)

	fed, err := ForJurisdiction(JurisdictionFederal)
	require.NoError(t, err)
	assert.IsType(t, &FederalEngine{}, fed)

	_, err = ForJurisdiction("TX")
	require.Error(t, err)
}
