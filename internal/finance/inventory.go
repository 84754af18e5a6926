package finance

import (
	"fmt"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// checkInventory validates the period's inventory figures. Three checks
// apply: the COGS identity within the configured tolerance, the costing
// method's admissibility under the standard, and the valuation ceiling
// at the lower of cost or net realizable value. IFRS prohibits LIFO
// unconditionally; the fact's figures cannot make it admissible.
func checkInventory(fact PostingFact, standard Standard, set *rules.Set) ([]violation.Violation, error) {
	code := "GAAP_ASC330"
	if standard == StandardIFRS {
		code = "IFRS_IAS2"
	}
	rule, err := set.Resolve(code)
	if err != nil {
		return nil, err
	}
	tolerance, err := rule.Param("cogs_tolerance")
	if err != nil {
		return nil, err
	}

	inv := fact.Inventory
	var violations []violation.Violation

	if standard == StandardIFRS && inv.Method == MethodLIFO {
		desc := "LIFO cost-flow assumption is prohibited under IAS 2"
		violations = append(violations, newViolation(rule, desc, "posting", fact.PostingID, nil))
	}

	// COGS = beginning + purchases - ending.
	expected := inv.BeginningValue.Add(inv.Purchases).Sub(inv.EndingValue)
	diff := inv.ReportedCOGS.Sub(expected)
	if diff.Abs().GreaterThan(tolerance) {
		impact := diff
		desc := fmt.Sprintf("reported COGS %s does not match beginning %s + purchases %s - ending %s = %s (difference %s)",
			money.FormatCurrency(inv.ReportedCOGS), money.FormatCurrency(inv.BeginningValue),
			money.FormatCurrency(inv.Purchases), money.FormatCurrency(inv.EndingValue),
			money.FormatCurrency(expected), money.FormatCurrency(diff))
		violations = append(violations, newViolation(rule, desc, "posting", fact.PostingID, &impact))
	}

	// Lower of cost or net realizable value, both standards. Skipped
	// when no valuation inputs were supplied.
	valued := !inv.Cost.IsZero() || !inv.NetRealizableValue.IsZero()
	ceiling := money.Min(inv.Cost, inv.NetRealizableValue)
	if valued && inv.RecordedValue.GreaterThan(ceiling) {
		overstatement := inv.RecordedValue.Sub(ceiling)
		desc := fmt.Sprintf("inventory recorded at %s exceeds lower of cost %s or net realizable value %s by %s",
			money.FormatCurrency(inv.RecordedValue), money.FormatCurrency(inv.Cost),
			money.FormatCurrency(inv.NetRealizableValue), money.FormatCurrency(overstatement))
		violations = append(violations, newViolation(rule, desc, "posting", fact.PostingID, &overstatement))
	}

	return violations, nil
}
