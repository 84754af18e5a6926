package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// Schedule computes the asset's full per-period depreciation charges.
// Every period is rounded to currency scale and the final period is
// plugged so the charges sum exactly to cost minus salvage. The asset
// must already pass validation.
func Schedule(asset DepreciableAsset) ([]decimal.Decimal, error) {
	if err := asset.validate(); err != nil {
		return nil, err
	}
	depreciable := asset.Cost.Sub(asset.Salvage)

	switch asset.Method {
	case MethodStraightLine:
		return straightLine(depreciable, asset.UsefulLifeYears), nil
	case MethodDecliningBalance:
		return decliningBalance(asset), nil
	case MethodUnitsProduction:
		return unitsOfProduction(depreciable, asset.TotalUnits, asset.UnitsPerPeriod), nil
	case MethodSumOfYearsDigits:
		return sumOfYearsDigits(depreciable, asset.UsefulLifeYears), nil
	}
	return nil, fmt.Errorf("unreachable depreciation method %q", asset.Method)
}

func straightLine(depreciable decimal.Decimal, life int) []decimal.Decimal {
	periods := make([]decimal.Decimal, life)
	charge := money.RoundCurrency(depreciable.Div(decimal.New(int64(life), 0)))
	remaining := depreciable
	for i := 0; i < life-1; i++ {
		periods[i] = charge
		remaining = remaining.Sub(charge)
	}
	periods[life-1] = remaining
	return periods
}

func decliningBalance(asset DepreciableAsset) []decimal.Decimal {
	life := asset.UsefulLifeYears
	rate := asset.DecliningFactor.Div(decimal.New(int64(life), 0))
	periods := make([]decimal.Decimal, life)
	book := asset.Cost
	floor := asset.Salvage
	for i := 0; i < life-1; i++ {
		charge := money.RoundCurrency(book.Mul(rate))
		// Book value never drops below salvage.
		charge = money.Min(charge, book.Sub(floor))
		charge = money.Max(charge, money.Zero)
		periods[i] = charge
		book = book.Sub(charge)
	}
	periods[life-1] = book.Sub(floor)
	return periods
}

func unitsOfProduction(depreciable, totalUnits decimal.Decimal, unitsPerPeriod []decimal.Decimal) []decimal.Decimal {
	periods := make([]decimal.Decimal, len(unitsPerPeriod))
	remaining := depreciable
	for i, units := range unitsPerPeriod {
		if i == len(unitsPerPeriod)-1 {
			periods[i] = remaining
			break
		}
		charge := money.RoundCurrency(depreciable.Mul(units).Div(totalUnits))
		periods[i] = charge
		remaining = remaining.Sub(charge)
	}
	return periods
}

func sumOfYearsDigits(depreciable decimal.Decimal, life int) []decimal.Decimal {
	digits := decimal.New(int64(life*(life+1)/2), 0)
	periods := make([]decimal.Decimal, life)
	remaining := depreciable
	for i := 0; i < life-1; i++ {
		numerator := decimal.New(int64(life-i), 0)
		charge := money.RoundCurrency(depreciable.Mul(numerator).Div(digits))
		periods[i] = charge
		remaining = remaining.Sub(charge)
	}
	periods[life-1] = remaining
	return periods
}

// checkComponentDepreciation enforces the IAS 16 component approach:
// parts of an asset that are material relative to its total cost and
// have a useful life different from the asset's must be depreciated
// separately. A component breakdown that does not cover the asset's
// full cost is also flagged.
func checkComponentDepreciation(fact PostingFact, set *rules.Set) ([]violation.Violation, error) {
	rule, err := set.Resolve("IFRS_IAS16")
	if err != nil {
		return nil, err
	}
	threshold, err := rule.Param("component_materiality_percent")
	if err != nil {
		return nil, err
	}

	hundred := decimal.New(100, 0)
	var violations []violation.Violation
	for _, asset := range fact.Assets {
		if len(asset.Components) == 0 {
			continue
		}

		componentTotal := money.Zero
		for _, c := range asset.Components {
			componentTotal = componentTotal.Add(c.Cost)
		}
		if !componentTotal.Equal(asset.Cost) {
			gap := asset.Cost.Sub(componentTotal)
			desc := fmt.Sprintf("asset %s component costs sum to %s but asset cost is %s (uncovered %s)",
				asset.AssetID, money.FormatCurrency(componentTotal),
				money.FormatCurrency(asset.Cost), money.FormatCurrency(gap))
			violations = append(violations, newViolation(rule, desc, "asset", asset.AssetID, &gap))
		}

		if !asset.DepreciatedAsSingleUnit {
			continue
		}
		for _, c := range asset.Components {
			if c.UsefulLifeYears == asset.UsefulLifeYears {
				continue
			}
			share := c.Cost.Div(asset.Cost).Mul(hundred)
			if share.LessThan(threshold) {
				continue
			}
			impact := c.Cost
			desc := fmt.Sprintf("asset %s depreciated as a single unit but component %q (%s, %s%% of cost) has a %d-year life against the asset's %d",
				asset.AssetID, c.Name, money.FormatCurrency(c.Cost), share.Round(1),
				c.UsefulLifeYears, asset.UsefulLifeYears)
			violations = append(violations, newViolation(rule, desc, "asset", asset.AssetID, &impact))
		}
	}
	return violations, nil
}
