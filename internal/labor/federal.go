package labor

import (
	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// FederalEngine implements the FLSA baseline: weekly overtime over the
// configured threshold at 1.5x and the federal wage floor. The FLSA has
// no daily overtime tiers and no meal/rest break mandate, so shift-level
// evaluation only splits hours and checks the wage floor.
type FederalEngine struct{}

var _ Engine = (*FederalEngine)(nil)

// dailySplit for the federal engine: no daily tiers, every hour is
// regular at the shift level.
func (e *FederalEngine) dailySplit(fact ShiftFact, set *rules.Set) (OvertimeResult, error) {
	res := OvertimeResult{
		RegularHours:    fact.Hours,
		OvertimeHours:   money.Zero,
		DoubleTimeHours: money.Zero,
	}
	res.RegularPay = money.Pay(res.RegularHours, fact.Rate, money.RateRegular)
	res.OvertimePay = money.Zero
	res.DoubleTimePay = money.Zero
	return res, nil
}

// EvaluateShift validates the fact, splits hours (all regular under the
// FLSA) and checks the federal wage floor.
func (e *FederalEngine) EvaluateShift(fact ShiftFact, set *rules.Set) (OvertimeResult, []violation.Violation, error) {
	if err := fact.Validate(); err != nil {
		return OvertimeResult{}, nil, err
	}
	res, err := e.dailySplit(fact, set)
	if err != nil {
		return OvertimeResult{}, nil, err
	}
	res.MealPremium = money.Zero
	res.RestPremium = money.Zero

	violations, err := checkMinimumWage(fact, set)
	if err != nil {
		return OvertimeResult{}, nil, err
	}

	res.TotalPay = res.RegularPay.Add(res.OvertimePay).Add(res.DoubleTimePay)
	return res, violations, nil
}

// EvaluateWeek computes the FLSA workweek aggregate.
func (e *FederalEngine) EvaluateWeek(fact WeekFact, set *rules.Set) (WeeklyResult, []violation.Violation, error) {
	return evaluateWeek(e, fact, set)
}
