package finance

import (
	"fmt"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// checkRevenueRecognition enforces that revenue is recognized only when
// it is both earned and realizable. Under IFRS the five-step contract
// model is also checked: an identified contract and a satisfied
// performance obligation dated no later than recognition.
func checkRevenueRecognition(fact PostingFact, standard Standard, set *rules.Set) ([]violation.Violation, error) {
	code := "GAAP_ASC606"
	if standard == StandardIFRS {
		code = "IFRS_15"
	}
	rule, err := set.Resolve(code)
	if err != nil {
		return nil, err
	}

	var violations []violation.Violation
	for _, item := range fact.Revenues {
		reasons := recognitionFailures(item, standard)
		if len(reasons) == 0 {
			continue
		}
		impact := item.Amount
		for _, reason := range reasons {
			desc := fmt.Sprintf("revenue item %s (%s) recognized prematurely: %s",
				item.ItemID, money.FormatCurrency(item.Amount), reason)
			violations = append(violations, newViolation(rule, desc, "revenue_item", item.ItemID, &impact))
		}
	}
	return violations, nil
}

// recognitionFailures returns every recognition criterion the item
// fails, in a fixed order.
func recognitionFailures(item RevenueItem, standard Standard) []string {
	var reasons []string

	earned := item.ServiceDelivered || item.GoodsDelivered
	if !earned {
		reasons = append(reasons, "not earned: no service or goods delivered")
	} else if !item.DeliveredDate.IsZero() && item.DeliveredDate.After(item.RecognitionDate) {
		reasons = append(reasons, fmt.Sprintf("delivery on %s postdates recognition on %s",
			item.DeliveredDate.Format("2006-01-02"), item.RecognitionDate.Format("2006-01-02")))
	}

	realizable := item.PaymentReceived || item.PaymentAssured
	if !realizable {
		reasons = append(reasons, "not realizable: payment neither received nor reasonably assured")
	} else if item.PaymentReceived && !item.PaymentDate.IsZero() && item.PaymentDate.After(item.RecognitionDate) && !item.PaymentAssured {
		reasons = append(reasons, fmt.Sprintf("payment on %s postdates recognition on %s and collection was not assured",
			item.PaymentDate.Format("2006-01-02"), item.RecognitionDate.Format("2006-01-02")))
	}

	if standard == StandardIFRS {
		if !item.ContractIdentified {
			reasons = append(reasons, "no identified contract with a customer")
		}
		if !item.PerformanceObligationMet {
			reasons = append(reasons, "performance obligation not satisfied")
		} else if !item.ObligationDate.IsZero() && item.ObligationDate.After(item.RecognitionDate) {
			reasons = append(reasons, fmt.Sprintf("performance obligation satisfied on %s, after recognition on %s",
				item.ObligationDate.Format("2006-01-02"), item.RecognitionDate.Format("2006-01-02")))
		}
	}
	return reasons
}
