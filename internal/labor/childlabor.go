package labor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// CheckChildLabor evaluates the age-banded FLSA restrictions for one
// shift of a minor employee. weekHours is the employee's total hours in
// the shift's workweek, needed for the weekly caps.
//
// Bands:
//   - below the minimum working age: any employment is a violation
//   - below the hazardous minimum age: hazardous work is prohibited
//     outright
//   - below the youth ceiling (under 16): daily and weekly hour caps
//     (tighter on school days/weeks) plus a time-of-day window
//
// Hour-cap breaches are severity-scaled by the size of the overage;
// the absolute prohibitions carry the rule's configured severity.
// Adults produce no violations.
func CheckChildLabor(fact ClassificationFact, shift ShiftFact, weekHours decimal.Decimal, set *rules.Set) ([]violation.Violation, error) {
	if err := fact.Validate(); err != nil {
		return nil, err
	}
	if err := shift.Validate(); err != nil {
		return nil, err
	}
	if weekHours.IsNegative() {
		return nil, compliance.Invalid("weekHours", money.FormatHours(weekHours), "must not be negative")
	}

	rule, err := set.Resolve("FLSA_212")
	if err != nil {
		return nil, err
	}

	minAge, err := rule.Param("minimum_working_age")
	if err != nil {
		return nil, err
	}
	hazardAge, err := rule.Param("hazardous_minimum_age")
	if err != nil {
		return nil, err
	}
	youthCeiling, err := rule.Param("youth_age_ceiling")
	if err != nil {
		return nil, err
	}

	age := decimal.New(int64(fact.Age), 0)
	if age.GreaterThanOrEqual(hazardAge) {
		return nil, nil
	}

	var violations []violation.Violation

	if age.LessThan(minAge) {
		desc := fmt.Sprintf("employment at age %d below minimum working age %s", fact.Age, minAge)
		violations = append(violations, newViolation(rule, desc, "employee", fact.EmployeeID, nil))
	}

	if fact.HazardousWork {
		desc := fmt.Sprintf("hazardous work assigned at age %d, prohibited below age %s", fact.Age, hazardAge)
		violations = append(violations, newViolation(rule, desc, "employee", fact.EmployeeID, nil))
	}

	if age.GreaterThanOrEqual(youthCeiling) {
		return violations, nil
	}

	// Under-16 band: hour caps and the time-of-day window apply, both
	// tighter during school periods.
	youthViolations, err := checkYouthHours(fact, shift, weekHours, rule)
	if err != nil {
		return nil, err
	}
	return append(violations, youthViolations...), nil
}

// checkYouthHours enforces the under-16 daily/weekly caps and the
// working-hours window.
func checkYouthHours(fact ClassificationFact, shift ShiftFact, weekHours decimal.Decimal, rule rules.Rule) ([]violation.Violation, error) {
	dayParam, weekParam := "nonschool_day_max_hours", "nonschool_week_max_hours"
	if fact.SchoolDay {
		dayParam = "school_day_max_hours"
	}
	if fact.SchoolWeek {
		weekParam = "school_week_max_hours"
	}

	dayMax, err := rule.Param(dayParam)
	if err != nil {
		return nil, err
	}
	weekMax, err := rule.Param(weekParam)
	if err != nil {
		return nil, err
	}
	earliest, err := rule.Param("youth_earliest_start_hour")
	if err != nil {
		return nil, err
	}
	latest, err := rule.Param("youth_latest_end_hour")
	if err != nil {
		return nil, err
	}

	// Minors require shift times; missing times cannot be assumed
	// compliant.
	if shift.StartHour == 0 && shift.EndHour == 0 {
		return nil, compliance.Invalid("startHour", "", "shift times are required for employees under 16")
	}
	if shift.StartHour < 0 || shift.StartHour > 23 || shift.EndHour < 1 || shift.EndHour > 24 || shift.EndHour <= shift.StartHour {
		return nil, compliance.Invalid("endHour", "", "shift hours must satisfy 0 <= start < end <= 24")
	}

	var violations []violation.Violation

	if shift.Hours.GreaterThan(dayMax) {
		overage := shift.Hours.Sub(dayMax)
		v := newViolation(rule, fmt.Sprintf("minor worked %s hours, daily cap is %s (%s)",
			money.FormatHours(shift.Hours), money.FormatHours(dayMax), dayLabel(fact.SchoolDay)),
			"shift", shift.ShiftID, nil)
		v.Severity = overageSeverity(overage)
		violations = append(violations, v)
	}

	if weekHours.GreaterThan(weekMax) {
		overage := weekHours.Sub(weekMax)
		v := newViolation(rule, fmt.Sprintf("minor worked %s hours this week, weekly cap is %s (%s)",
			money.FormatHours(weekHours), money.FormatHours(weekMax), weekLabel(fact.SchoolWeek)),
			"employee", fact.EmployeeID, nil)
		v.Severity = overageSeverity(overage)
		violations = append(violations, v)
	}

	start := decimal.New(int64(shift.StartHour), 0)
	end := decimal.New(int64(shift.EndHour), 0)
	if start.LessThan(earliest) || end.GreaterThan(latest) {
		v := newViolation(rule, fmt.Sprintf("minor scheduled %02d:00-%02d:00, permitted window is %s:00-%s:00",
			shift.StartHour, shift.EndHour, earliest, latest),
			"shift", shift.ShiftID, nil)
		v.Severity = violation.SeverityHigh
		violations = append(violations, v)
	}

	return violations, nil
}

// overageSeverity scales an hour-cap breach: up to one hour over is
// MEDIUM, up to two HIGH, beyond that CRITICAL.
func overageSeverity(overage decimal.Decimal) violation.Severity {
	two := decimal.New(2, 0)
	switch {
	case overage.LessThanOrEqual(money.One):
		return violation.SeverityMedium
	case overage.LessThanOrEqual(two):
		return violation.SeverityHigh
	default:
		return violation.SeverityCritical
	}
}

func dayLabel(school bool) string {
	if school {
		return "school day"
	}
	return "non-school day"
}

func weekLabel(school bool) string {
	if school {
		return "school week"
	}
	return "non-school week"
}
