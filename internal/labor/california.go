package labor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// CaliforniaEngine implements the CA Labor Code rules: daily overtime
// tiers (section 510), the 7th-consecutive-day override, meal breaks
// (section 512) and rest breaks (section 516 wage orders), plus the
// state wage floor.
type CaliforniaEngine struct{}

var _ Engine = (*CaliforniaEngine)(nil)

// EvaluateShift computes the daily pay split and break premiums.
//
// Standard tiers: hours <= 8 at 1.0x, hours in (8,12] at 1.5x, hours
// beyond 12 at 2.0x. On the 7th consecutive workweek day the override
// applies instead: first 8 hours at 1.5x, remainder at 2.0x. The
// override replaces the standard tiers, it never stacks with them.
func (e *CaliforniaEngine) EvaluateShift(fact ShiftFact, set *rules.Set) (OvertimeResult, []violation.Violation, error) {
	if err := fact.Validate(); err != nil {
		return OvertimeResult{}, nil, err
	}

	res, err := e.dailySplit(fact, set)
	if err != nil {
		return OvertimeResult{}, nil, err
	}

	var violations []violation.Violation

	mealViolations, mealPremium, err := e.checkMealBreaks(fact, set)
	if err != nil {
		return OvertimeResult{}, nil, err
	}
	violations = append(violations, mealViolations...)
	res.MealPremium = mealPremium

	restViolations, restPremium, err := e.checkRestBreaks(fact, set)
	if err != nil {
		return OvertimeResult{}, nil, err
	}
	violations = append(violations, restViolations...)
	res.RestPremium = restPremium

	wageViolations, err := checkMinimumWage(fact, set)
	if err != nil {
		return OvertimeResult{}, nil, err
	}
	violations = append(violations, wageViolations...)

	res.TotalPay = res.RegularPay.
		Add(res.OvertimePay).
		Add(res.DoubleTimePay).
		Add(res.MealPremium).
		Add(res.RestPremium)

	return res, violations, nil
}

// EvaluateWeek delegates to the shared weekly computation with the CA
// daily engine supplying the per-shift splits.
func (e *CaliforniaEngine) EvaluateWeek(fact WeekFact, set *rules.Set) (WeeklyResult, []violation.Violation, error) {
	return evaluateWeek(e, fact, set)
}

// checkMealBreaks raises one violation per missing required meal break.
// A shift over the first threshold (5h) requires one unpaid 30-minute
// break; over the second (10h) a second. Each miss owes one hour at the
// regular rate, never the overtime rate.
func (e *CaliforniaEngine) checkMealBreaks(fact ShiftFact, set *rules.Set) ([]violation.Violation, decimal.Decimal, error) {
	rule, err := set.Resolve("CA_LABOR_CODE_512")
	if err != nil {
		return nil, money.Zero, err
	}
	first, err := rule.Param("first_meal_threshold_hours")
	if err != nil {
		return nil, money.Zero, err
	}
	second, err := rule.Param("second_meal_threshold_hours")
	if err != nil {
		return nil, money.Zero, err
	}
	premiumHours, err := rule.Param("premium_hours")
	if err != nil {
		return nil, money.Zero, err
	}

	required := 0
	if fact.Hours.GreaterThan(first) {
		required++
	}
	if fact.Hours.GreaterThan(second) {
		required++
	}
	missing := required - fact.MealBreaksTaken
	if missing <= 0 {
		return nil, money.Zero, nil
	}

	premium := money.Pay(premiumHours, fact.Rate, money.RateRegular)
	var violations []violation.Violation
	total := money.Zero
	for i := 0; i < missing; i++ {
		impact := premium
		desc := fmt.Sprintf("meal break %d of %d not taken on %s-hour shift",
			fact.MealBreaksTaken+i+1, required, money.FormatHours(fact.Hours))
		violations = append(violations, newViolation(rule, desc, "shift", fact.ShiftID, &impact))
		total = total.Add(premium)
	}
	return violations, total, nil
}

// checkRestBreaks raises one violation per missing paid 10-minute rest
// break; one break is required per full 4-hour block worked.
func (e *CaliforniaEngine) checkRestBreaks(fact ShiftFact, set *rules.Set) ([]violation.Violation, decimal.Decimal, error) {
	rule, err := set.Resolve("CA_LABOR_CODE_516")
	if err != nil {
		return nil, money.Zero, err
	}
	block, err := rule.Param("block_hours")
	if err != nil {
		return nil, money.Zero, err
	}
	premiumHours, err := rule.Param("premium_hours")
	if err != nil {
		return nil, money.Zero, err
	}
	if block.IsZero() {
		return nil, money.Zero, &rules.ConfigError{Code: rule.Code, Param: "block_hours", Reason: "must be positive"}
	}

	required := int(fact.Hours.Div(block).Floor().IntPart())
	missing := required - fact.RestBreaksTaken
	if missing <= 0 {
		return nil, money.Zero, nil
	}

	premium := money.Pay(premiumHours, fact.Rate, money.RateRegular)
	var violations []violation.Violation
	total := money.Zero
	for i := 0; i < missing; i++ {
		impact := premium
		desc := fmt.Sprintf("rest break %d of %d not provided on %s-hour shift",
			fact.RestBreaksTaken+i+1, required, money.FormatHours(fact.Hours))
		violations = append(violations, newViolation(rule, desc, "shift", fact.ShiftID, &impact))
		total = total.Add(premium)
	}
	return violations, total, nil
}
