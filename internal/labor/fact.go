package labor

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
)

// Jurisdiction selects which regulation family applies to a fact.
type Jurisdiction string

const (
	JurisdictionCalifornia Jurisdiction = "CA"
	JurisdictionFederal    Jurisdiction = "FEDERAL"
)

// ShiftFact describes one worked shift, supplied per evaluation call.
// The core does not persist facts; the timesheet module owns them.
type ShiftFact struct {
	Date    time.Time
	ShiftID string // entity reference for raised violations

	Hours decimal.Decimal
	Rate  decimal.Decimal

	// WorkweekDay is the ordinal position within the fixed 7-day
	// workweek (1-7). Day 7 marks the 7th consecutive day, which
	// replaces the standard daily overtime tiers.
	WorkweekDay int

	MealBreaksTaken int
	RestBreaksTaken int

	// StartHour and EndHour bound the shift on a 24h clock. Required
	// only for minors, where time-of-day restrictions apply.
	StartHour int
	EndHour   int

	Jurisdiction Jurisdiction
}

// Validate rejects malformed shifts before any engine logic runs.
func (f ShiftFact) Validate() error {
	if f.ShiftID == "" {
		return compliance.Invalid("shiftId", "", "is required")
	}
	if f.Hours.IsNegative() {
		return compliance.Invalid("hours", money.FormatHours(f.Hours), "must not be negative")
	}
	if f.Hours.GreaterThan(money.MustParse("24")) {
		return compliance.Invalid("hours", money.FormatHours(f.Hours), "exceeds 24 hours in one day")
	}
	if f.Rate.IsZero() || f.Rate.IsNegative() {
		return compliance.Invalid("rate", money.FormatCurrency(f.Rate), "must be a positive hourly rate")
	}
	if f.WorkweekDay < 1 || f.WorkweekDay > 7 {
		return compliance.Invalid("workweekDay", "", "must be within 1-7")
	}
	if f.MealBreaksTaken < 0 {
		return compliance.Invalid("mealBreaksTaken", "", "must not be negative")
	}
	if f.RestBreaksTaken < 0 {
		return compliance.Invalid("restBreaksTaken", "", "must not be negative")
	}
	switch f.Jurisdiction {
	case JurisdictionCalifornia, JurisdictionFederal:
	default:
		return compliance.Invalid("jurisdiction", string(f.Jurisdiction), "unknown jurisdiction")
	}
	return nil
}

// IsSeventhDay reports whether the shift falls on the 7th consecutive
// day of the workweek.
func (f ShiftFact) IsSeventhDay() bool {
	return f.WorkweekDay == 7
}

// WeekFact aggregates the shifts of one fixed workweek for weekly
// overtime evaluation.
type WeekFact struct {
	WeekID       string
	Shifts       []ShiftFact
	Jurisdiction Jurisdiction

	// Policy resolves the daily-vs-weekly overtime interaction.
	// Zero value is PolicyGreaterOf.
	Policy OvertimePolicy
}

// OvertimePolicy selects how daily and weekly overtime reconcile when
// both apply to overlapping hours. Statutory practice is greater-of;
// the alternatives exist because the interaction is a policy point, and
// both interpretations are exercised by tests.
type OvertimePolicy string

const (
	// PolicyGreaterOf pays the larger of the daily-tier total and the
	// weekly-aggregate total. Hours are never compensated under both.
	PolicyGreaterOf OvertimePolicy = "GREATER_OF"

	// PolicyDailyOnly pays the daily-tier computation only.
	PolicyDailyOnly OvertimePolicy = "DAILY_ONLY"

	// PolicyWeeklyOnly pays the weekly-aggregate computation only.
	PolicyWeeklyOnly OvertimePolicy = "WEEKLY_ONLY"
)

// Validate rejects malformed week aggregates. All shifts must share one
// hourly rate: the workweek regular rate is a single figure, and a rate
// change mid-week is a fact-supply problem, not something the engine
// papers over.
func (f WeekFact) Validate() error {
	if f.WeekID == "" {
		return compliance.Invalid("weekId", "", "is required")
	}
	if len(f.Shifts) == 0 {
		return compliance.Invalid("shifts", "", "at least one shift is required")
	}
	if len(f.Shifts) > 7 {
		return compliance.Invalid("shifts", "", "a workweek has at most 7 shifts")
	}
	switch f.Policy {
	case "", PolicyGreaterOf, PolicyDailyOnly, PolicyWeeklyOnly:
	default:
		return compliance.Invalid("policy", string(f.Policy), "unknown overtime policy")
	}
	rate := f.Shifts[0].Rate
	seen := make(map[int]bool, len(f.Shifts))
	for _, s := range f.Shifts {
		if err := s.Validate(); err != nil {
			return err
		}
		if !s.Rate.Equal(rate) {
			return compliance.Invalid("rate", money.FormatCurrency(s.Rate), "all shifts in a workweek must share one hourly rate")
		}
		if seen[s.WorkweekDay] {
			return compliance.Invalid("workweekDay", "", "duplicate workweek day in week aggregate")
		}
		seen[s.WorkweekDay] = true
	}
	return nil
}

// ExemptionCategory is a claimed FLSA section 13 exemption.
type ExemptionCategory string

const (
	ExemptExecutive         ExemptionCategory = "EXECUTIVE"
	ExemptAdministrative    ExemptionCategory = "ADMINISTRATIVE"
	ExemptProfessional      ExemptionCategory = "PROFESSIONAL"
	ExemptComputer          ExemptionCategory = "COMPUTER"
	ExemptOutsideSales      ExemptionCategory = "OUTSIDE_SALES"
	ExemptHighlyCompensated ExemptionCategory = "HIGHLY_COMPENSATED"
)

// ClassificationFact describes an employee for the exemption and child
// labor checks.
type ClassificationFact struct {
	EmployeeID string
	JobTitle   string

	WeeklySalary decimal.Decimal
	AnnualSalary decimal.Decimal

	// DutyTags are normalized duty descriptors ("supervises_two_plus",
	// "independent_judgment", ...) matched against the claimed
	// category's duty test.
	DutyTags []string

	ClaimedExemption ExemptionCategory

	Age           int
	HazardousWork bool
	SchoolDay     bool
	SchoolWeek    bool
}

// Validate rejects malformed classification facts.
func (f ClassificationFact) Validate() error {
	if f.EmployeeID == "" {
		return compliance.Invalid("employeeId", "", "is required")
	}
	if f.Age < 0 || f.Age > 120 {
		return compliance.Invalid("age", "", "out of range")
	}
	if f.WeeklySalary.IsNegative() {
		return compliance.Invalid("weeklySalary", money.FormatCurrency(f.WeeklySalary), "must not be negative")
	}
	if f.AnnualSalary.IsNegative() {
		return compliance.Invalid("annualSalary", money.FormatCurrency(f.AnnualSalary), "must not be negative")
	}
	return nil
}

// hasTag reports whether the fact carries a duty tag.
func (f ClassificationFact) hasTag(tag string) bool {
	for _, t := range f.DutyTags {
		if t == tag {
			return true
		}
	}
	return false
}
