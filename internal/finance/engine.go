package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// Engine is the capability set an accounting standard implements. One
// variant exists per standard, selected by configuration.
type Engine interface {
	// ValidatePosting checks a posting fact against the standard's
	// identities and recognition rules.
	ValidatePosting(fact PostingFact, set *rules.Set) ([]violation.Violation, error)
}

// ForStandard returns the engine variant for an accounting standard.
func ForStandard(s Standard) (Engine, error) {
	switch s {
	case StandardGAAP:
		return &GAAPEngine{}, nil
	case StandardIFRS:
		return &IFRSEngine{}, nil
	default:
		return nil, fmt.Errorf("no finance engine for standard %q", s)
	}
}

// GAAPEngine validates postings under US GAAP: all four costing methods
// permitted, revenue under the earned-and-realizable test, materiality
// per ASC guidance.
type GAAPEngine struct{}

var _ Engine = (*GAAPEngine)(nil)

// ValidatePosting implements Engine.
func (e *GAAPEngine) ValidatePosting(fact PostingFact, set *rules.Set) ([]violation.Violation, error) {
	return validatePosting(fact, StandardGAAP, set)
}

// IFRSEngine validates postings under IFRS: LIFO prohibited outright,
// five-step revenue model, component depreciation per IAS 16.
type IFRSEngine struct{}

var _ Engine = (*IFRSEngine)(nil)

// ValidatePosting implements Engine.
func (e *IFRSEngine) ValidatePosting(fact PostingFact, set *rules.Set) ([]violation.Violation, error) {
	return validatePosting(fact, StandardIFRS, set)
}

// validatePosting runs every applicable check for the standard. Checks
// are independent; all violations accumulate rather than short-circuit,
// so a single posting surfaces its full problem list at once.
func validatePosting(fact PostingFact, standard Standard, set *rules.Set) ([]violation.Violation, error) {
	if err := fact.Validate(); err != nil {
		return nil, err
	}

	var violations []violation.Violation

	if len(fact.Balances) > 0 {
		vs, err := checkBalanceIdentity(fact, standard, set)
		if err != nil {
			return nil, err
		}
		violations = append(violations, vs...)
	}

	if len(fact.Revenues) > 0 {
		vs, err := checkRevenueRecognition(fact, standard, set)
		if err != nil {
			return nil, err
		}
		violations = append(violations, vs...)
	}

	if fact.Inventory != nil {
		vs, err := checkInventory(fact, standard, set)
		if err != nil {
			return nil, err
		}
		violations = append(violations, vs...)
	}

	if standard == StandardIFRS && len(fact.Assets) > 0 {
		vs, err := checkComponentDepreciation(fact, set)
		if err != nil {
			return nil, err
		}
		violations = append(violations, vs...)
	}

	if len(fact.MethodChanges) > 0 {
		vs, err := checkMateriality(fact, standard, set)
		if err != nil {
			return nil, err
		}
		violations = append(violations, vs...)
	}

	return violations, nil
}

// ruleCode returns the standard's rule code for a shared check.
func ruleCode(standard Standard, suffix string) string {
	if standard == StandardIFRS {
		return "IFRS_" + suffix
	}
	return "GAAP_" + suffix
}

// BalanceResult is the computed accounting identity for a fact's
// balances. Exposed so callers (balance-sheet reporting) can reuse the
// engine's arithmetic.
type BalanceResult struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Equity      decimal.Decimal

	// Discrepancy is assets - (liabilities + equity), signed.
	Discrepancy decimal.Decimal
	IsBalanced  bool
}

// ComputeBalance sums the fact's balances by category and evaluates the
// identity within the given tolerance.
func ComputeBalance(balances []AccountBalance, tolerance decimal.Decimal) BalanceResult {
	var res BalanceResult
	res.Assets, res.Liabilities, res.Equity = money.Zero, money.Zero, money.Zero
	for _, b := range balances {
		switch b.Category {
		case CategoryAsset:
			res.Assets = res.Assets.Add(b.Balance)
		case CategoryLiability:
			res.Liabilities = res.Liabilities.Add(b.Balance)
		case CategoryEquity:
			res.Equity = res.Equity.Add(b.Balance)
		}
	}
	res.Discrepancy = res.Assets.Sub(res.Liabilities.Add(res.Equity))
	res.IsBalanced = res.Discrepancy.Abs().LessThanOrEqual(tolerance)
	return res
}

// checkBalanceIdentity enforces assets == liabilities + equity within
// the configured tolerance. A mismatch is critical and carries the
// signed discrepancy as impact.
func checkBalanceIdentity(fact PostingFact, standard Standard, set *rules.Set) ([]violation.Violation, error) {
	rule, err := set.Resolve(ruleCode(standard, "BALANCE"))
	if err != nil {
		return nil, err
	}
	tolerance, err := rule.Param("rounding_tolerance")
	if err != nil {
		return nil, err
	}

	res := ComputeBalance(fact.Balances, tolerance)
	if res.IsBalanced {
		return nil, nil
	}

	impact := res.Discrepancy
	desc := fmt.Sprintf("balance sheet identity broken: assets %s != liabilities %s + equity %s (discrepancy %s)",
		money.FormatCurrency(res.Assets), money.FormatCurrency(res.Liabilities),
		money.FormatCurrency(res.Equity), money.FormatCurrency(res.Discrepancy))
	return []violation.Violation{
		newViolation(rule, desc, "posting", fact.PostingID, &impact),
	}, nil
}

// checkMateriality flags method changes whose relative impact meets the
// configured materiality percentage.
func checkMateriality(fact PostingFact, standard Standard, set *rules.Set) ([]violation.Violation, error) {
	rule, err := set.Resolve(ruleCode(standard, "MATERIALITY"))
	if err != nil {
		return nil, err
	}
	threshold, err := rule.Param("materiality_percent")
	if err != nil {
		return nil, err
	}

	hundred := decimal.New(100, 0)
	var violations []violation.Violation
	for _, mc := range fact.MethodChanges {
		pct := mc.Impact.Abs().Div(mc.Base.Abs()).Mul(hundred)
		if pct.LessThan(threshold) {
			continue
		}
		impact := mc.Impact
		desc := fmt.Sprintf("accounting method change %q (%s -> %s) is material: %s%% of base exceeds %s%% threshold",
			mc.Description, mc.PriorMethod, mc.NewMethod,
			pct.Round(2), threshold)
		violations = append(violations, newViolation(rule, desc, "posting", fact.PostingID, &impact))
	}
	return violations, nil
}

// newViolation builds a financial violation candidate from a configured
// rule. Identity, status and detection timestamp are assigned by the
// compliance service at record time.
func newViolation(rule rules.Rule, desc, entityType, entityID string, impact *decimal.Decimal) violation.Violation {
	return violation.Violation{
		Kind:        violation.KindFinancial,
		Regulation:  rule.Code,
		Severity:    rule.Severity,
		Description: desc,
		EntityType:  entityType,
		EntityID:    entityID,
		Impact:      impact,
	}
}
