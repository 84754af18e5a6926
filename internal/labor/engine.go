package labor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// OvertimeResult is the pay split for one shift.
//
// Hour buckets are exclusive: each worked hour lands in exactly one tier.
// Pay components are rounded to currency scale individually; TotalPay is
// their exact sum.
type OvertimeResult struct {
	RegularHours    decimal.Decimal
	OvertimeHours   decimal.Decimal // 1.5x tier
	DoubleTimeHours decimal.Decimal // 2.0x tier

	RegularPay    decimal.Decimal
	OvertimePay   decimal.Decimal
	DoubleTimePay decimal.Decimal

	// MealPremium and RestPremium are the break-violation premiums owed
	// on top of worked-hour pay (one regular-rate hour per missed break).
	MealPremium decimal.Decimal
	RestPremium decimal.Decimal

	TotalPay decimal.Decimal
}

// WeeklyResult is the workweek-aggregate computation.
type WeeklyResult struct {
	TotalHours      decimal.Decimal
	RegularHours    decimal.Decimal
	OvertimeHours   decimal.Decimal
	DoubleTimeHours decimal.Decimal

	// DailyPay is the sum of the per-shift daily-tier totals,
	// WeeklyPay the FLSA aggregate computation, Pay the figure the
	// configured policy selects.
	DailyPay  decimal.Decimal
	WeeklyPay decimal.Decimal
	Pay       decimal.Decimal

	PolicyApplied OvertimePolicy
}

// Engine is the capability set a labor regulation family implements.
// One variant exists per jurisdiction, selected by configuration.
type Engine interface {
	// EvaluateShift computes the daily pay split and raises any
	// shift-level violations (breaks, wage floor).
	EvaluateShift(fact ShiftFact, set *rules.Set) (OvertimeResult, []violation.Violation, error)

	// EvaluateWeek computes the workweek aggregate and reconciles
	// daily vs. weekly overtime under the fact's policy.
	EvaluateWeek(fact WeekFact, set *rules.Set) (WeeklyResult, []violation.Violation, error)
}

// ForJurisdiction returns the engine variant for a jurisdiction.
func ForJurisdiction(j Jurisdiction) (Engine, error) {
	switch j {
	case JurisdictionCalifornia:
		return &CaliforniaEngine{}, nil
	case JurisdictionFederal:
		return &FederalEngine{}, nil
	default:
		return nil, fmt.Errorf("no labor engine for jurisdiction %q", j)
	}
}

// newViolation builds a violation candidate from a configured rule.
// Identity, status and detection timestamp are assigned by the
// compliance service when the candidate is recorded.
func newViolation(rule rules.Rule, desc, entityType, entityID string, impact *decimal.Decimal) violation.Violation {
	return violation.Violation{
		Kind:        violation.KindLaborLaw,
		Regulation:  rule.Code,
		Severity:    rule.Severity,
		Description: desc,
		EntityType:  entityType,
		EntityID:    entityID,
		Impact:      impact,
	}
}

// checkMinimumWage raises a violation when the shift rate undercuts the
// applicable wage floor. When both a state and the federal floor apply,
// the applicable minimum is the greater of the two and the violation
// cites the governing regulation.
func checkMinimumWage(fact ShiftFact, set *rules.Set) ([]violation.Violation, error) {
	fed, err := set.Resolve("FLSA_206")
	if err != nil {
		return nil, err
	}
	fedWage, err := fed.Param("federal_minimum_wage")
	if err != nil {
		return nil, err
	}

	governing := fed
	floor := fedWage
	if fact.Jurisdiction == JurisdictionCalifornia {
		state, err := set.Resolve("CA_LABOR_1182")
		if err != nil {
			return nil, err
		}
		stateWage, err := state.Param("state_minimum_wage")
		if err != nil {
			return nil, err
		}
		if stateWage.GreaterThan(floor) {
			governing = state
			floor = stateWage
		}
	}

	if fact.Rate.GreaterThanOrEqual(floor) {
		return nil, nil
	}

	// Impact: the shortfall across the shift's hours.
	shortfall := money.RoundCurrency(floor.Sub(fact.Rate).Mul(fact.Hours))
	desc := fmt.Sprintf("hourly rate %s below applicable minimum wage %s",
		money.FormatCurrency(fact.Rate), money.FormatCurrency(floor))
	return []violation.Violation{
		newViolation(governing, desc, "shift", fact.ShiftID, &shortfall),
	}, nil
}
