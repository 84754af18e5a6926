package labor

import (
	"fmt"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// dailySplitter is the per-shift tier computation each engine variant
// supplies to the shared workweek evaluation. Splits exclude break
// premiums: those are owed per shift regardless of how the weekly
// comparison resolves.
type dailySplitter interface {
	dailySplit(fact ShiftFact, set *rules.Set) (OvertimeResult, error)
}

// dailySplit for the CA engine: statutory tiers with the 7th-day
// override. The override replaces the standard tiers entirely.
func (e *CaliforniaEngine) dailySplit(fact ShiftFact, set *rules.Set) (OvertimeResult, error) {
	daily, err := set.Resolve("CA_LABOR_CODE_510")
	if err != nil {
		return OvertimeResult{}, err
	}
	otThreshold, err := daily.Param("daily_overtime_threshold_hours")
	if err != nil {
		return OvertimeResult{}, err
	}
	dtThreshold, err := daily.Param("double_time_threshold_hours")
	if err != nil {
		return OvertimeResult{}, err
	}
	seventhPremium, err := daily.Param("seventh_day_premium_hours")
	if err != nil {
		return OvertimeResult{}, err
	}

	var res OvertimeResult
	if fact.IsSeventhDay() {
		res.RegularHours = money.Zero
		res.OvertimeHours = money.Min(fact.Hours, seventhPremium)
		res.DoubleTimeHours = money.Max(fact.Hours.Sub(seventhPremium), money.Zero)
	} else {
		res.RegularHours = money.Min(fact.Hours, otThreshold)
		res.OvertimeHours = money.Clamp(fact.Hours.Sub(otThreshold), money.Zero, dtThreshold.Sub(otThreshold))
		res.DoubleTimeHours = money.Max(fact.Hours.Sub(dtThreshold), money.Zero)
	}
	res.RegularPay = money.Pay(res.RegularHours, fact.Rate, money.RateRegular)
	res.OvertimePay = money.Pay(res.OvertimeHours, fact.Rate, money.RateTimeHalf)
	res.DoubleTimePay = money.Pay(res.DoubleTimeHours, fact.Rate, money.RateDouble)
	return res, nil
}

// evaluateWeek is the shared workweek-aggregate computation.
//
// It computes two candidate totals for the week's worked hours: the sum
// of the per-shift daily-tier totals, and the FLSA aggregate (hours over
// the weekly threshold at 1.5x). The fact's policy selects the payable
// figure; hours are never compensated under both computations.
//
// A weekly overtime violation is raised only when the selected pay falls
// short of the FLSA aggregate, i.e. the daily-only interpretation
// underpays weekly overtime. Its impact is the shortfall.
func evaluateWeek(splitter dailySplitter, fact WeekFact, set *rules.Set) (WeeklyResult, []violation.Violation, error) {
	if err := fact.Validate(); err != nil {
		return WeeklyResult{}, nil, err
	}
	policy := fact.Policy
	if policy == "" {
		policy = PolicyGreaterOf
	}

	weekly, err := set.Resolve("FLSA_207")
	if err != nil {
		return WeeklyResult{}, nil, err
	}
	threshold, err := weekly.Param("weekly_overtime_threshold_hours")
	if err != nil {
		return WeeklyResult{}, nil, err
	}

	rate := fact.Shifts[0].Rate
	totalHours := money.Zero
	dailyPay := money.Zero
	dailyRegular, dailyOT, dailyDT := money.Zero, money.Zero, money.Zero
	for _, shift := range fact.Shifts {
		split, err := splitter.dailySplit(shift, set)
		if err != nil {
			return WeeklyResult{}, nil, err
		}
		totalHours = totalHours.Add(shift.Hours)
		dailyPay = dailyPay.Add(split.RegularPay).Add(split.OvertimePay).Add(split.DoubleTimePay)
		dailyRegular = dailyRegular.Add(split.RegularHours)
		dailyOT = dailyOT.Add(split.OvertimeHours)
		dailyDT = dailyDT.Add(split.DoubleTimeHours)
	}

	weeklyOT := money.Max(totalHours.Sub(threshold), money.Zero)
	weeklyRegular := totalHours.Sub(weeklyOT)
	weeklyPay := money.Pay(weeklyRegular, rate, money.RateRegular).
		Add(money.Pay(weeklyOT, rate, money.RateTimeHalf))

	res := WeeklyResult{
		TotalHours:    totalHours,
		DailyPay:      dailyPay,
		WeeklyPay:     weeklyPay,
		PolicyApplied: policy,
	}

	useWeekly := false
	switch policy {
	case PolicyGreaterOf:
		useWeekly = weeklyPay.GreaterThan(dailyPay)
		res.Pay = money.Max(dailyPay, weeklyPay)
	case PolicyDailyOnly:
		res.Pay = dailyPay
	case PolicyWeeklyOnly:
		useWeekly = true
		res.Pay = weeklyPay
	}

	if useWeekly {
		res.RegularHours = weeklyRegular
		res.OvertimeHours = weeklyOT
		res.DoubleTimeHours = money.Zero
	} else {
		res.RegularHours = dailyRegular
		res.OvertimeHours = dailyOT
		res.DoubleTimeHours = dailyDT
	}

	var violations []violation.Violation
	if res.Pay.LessThan(weeklyPay) {
		shortfall := weeklyPay.Sub(res.Pay)
		desc := fmt.Sprintf("weekly overtime underpaid: %s hours over %s require %s, policy %s pays %s",
			money.FormatHours(weeklyOT), money.FormatHours(threshold),
			money.FormatCurrency(weeklyPay), policy, money.FormatCurrency(res.Pay))
		violations = append(violations, newViolation(weekly, desc, "workweek", fact.WeekID, &shortfall))
	}

	return res, violations, nil
}
