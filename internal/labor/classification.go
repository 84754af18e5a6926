package labor

import (
	"fmt"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// ClassificationResult is the outcome of the exemption test.
type ClassificationResult struct {
	IsExempt bool

	// Reason explains a failed test ("weekly salary 900.00 below
	// threshold 1128.00"). Empty when exempt.
	Reason string
}

// dutyTest is the duty-tag predicate for one exemption category.
// An employee passes when every required tag is present and, where
// anyOf is non-empty, at least one of those as well.
type dutyTest struct {
	required []string
	anyOf    []string
}

// dutyTests encodes the per-category duty requirements. Tag vocabulary
// follows the HR module's duty descriptors.
var dutyTests = map[ExemptionCategory]dutyTest{
	ExemptExecutive: {
		required: []string{"supervises_two_plus", "management_primary_duty"},
		anyOf:    []string{"hire_fire_authority", "hiring_recommendations_weighted"},
	},
	ExemptAdministrative: {
		required: []string{"office_nonmanual_work", "independent_judgment"},
	},
	ExemptProfessional: {
		required: []string{},
		anyOf:    []string{"advanced_knowledge_field", "creative_original_work"},
	},
	ExemptComputer: {
		required: []string{},
		anyOf:    []string{"systems_analysis", "program_design", "software_engineering"},
	},
	ExemptOutsideSales: {
		required: []string{"sales_primary_duty", "regularly_away_from_business"},
	},
	ExemptHighlyCompensated: {
		required: []string{},
		anyOf: []string{
			"supervises_two_plus", "office_nonmanual_work",
			"advanced_knowledge_field", "systems_analysis",
		},
	},
}

// CheckClassification runs the two-part exemption test: the salary-basis
// threshold AND the claimed category's duty test. Failing either returns
// IsExempt=false with the reason; a failed test on a claimed exemption
// additionally raises a misclassification violation, since a
// misclassified employee has untracked hours and unpaid overtime.
//
// The outside-sales category carries no salary requirement; the
// highly-compensated category tests annual rather than weekly
// compensation.
func CheckClassification(fact ClassificationFact, set *rules.Set) (ClassificationResult, []violation.Violation, error) {
	if err := fact.Validate(); err != nil {
		return ClassificationResult{}, nil, err
	}

	rule, err := set.Resolve("FLSA_213")
	if err != nil {
		return ClassificationResult{}, nil, err
	}

	test, ok := dutyTests[fact.ClaimedExemption]
	if !ok {
		res := ClassificationResult{
			IsExempt: false,
			Reason:   fmt.Sprintf("unknown exemption category %q", fact.ClaimedExemption),
		}
		return res, nil, nil
	}

	if reason, err := salaryShortfall(fact, rule); err != nil {
		return ClassificationResult{}, nil, err
	} else if reason != "" {
		return failClassification(fact, rule, reason)
	}

	if reason := dutyShortfall(fact, test); reason != "" {
		return failClassification(fact, rule, reason)
	}

	return ClassificationResult{IsExempt: true}, nil, nil
}

// salaryShortfall returns a non-empty reason when the salary-basis test
// fails. Outside sales is exempt from the salary test entirely.
func salaryShortfall(fact ClassificationFact, rule rules.Rule) (string, error) {
	switch fact.ClaimedExemption {
	case ExemptOutsideSales:
		return "", nil
	case ExemptHighlyCompensated:
		threshold, err := rule.Param("highly_compensated_annual_threshold")
		if err != nil {
			return "", err
		}
		if fact.AnnualSalary.LessThan(threshold) {
			return fmt.Sprintf("annual compensation %s below highly-compensated threshold %s",
				money.FormatCurrency(fact.AnnualSalary), money.FormatCurrency(threshold)), nil
		}
		return "", nil
	default:
		threshold, err := rule.Param("weekly_salary_threshold")
		if err != nil {
			return "", err
		}
		if fact.WeeklySalary.LessThan(threshold) {
			return fmt.Sprintf("weekly salary %s below threshold %s",
				money.FormatCurrency(fact.WeeklySalary), money.FormatCurrency(threshold)), nil
		}
		return "", nil
	}
}

// dutyShortfall returns a non-empty reason when the duty-tag predicate
// fails.
func dutyShortfall(fact ClassificationFact, test dutyTest) string {
	for _, tag := range test.required {
		if !fact.hasTag(tag) {
			return fmt.Sprintf("%s duty test requires %q", fact.ClaimedExemption, tag)
		}
	}
	if len(test.anyOf) > 0 {
		for _, tag := range test.anyOf {
			if fact.hasTag(tag) {
				return ""
			}
		}
		return fmt.Sprintf("%s duty test requires one of %v", fact.ClaimedExemption, test.anyOf)
	}
	return ""
}

// failClassification builds the non-exempt result plus the
// misclassification violation for a claimed-but-failed exemption.
func failClassification(fact ClassificationFact, rule rules.Rule, reason string) (ClassificationResult, []violation.Violation, error) {
	res := ClassificationResult{IsExempt: false, Reason: reason}
	desc := fmt.Sprintf("employee claimed %s exemption but fails test: %s", fact.ClaimedExemption, reason)
	v := newViolation(rule, desc, "employee", fact.EmployeeID, nil)
	return res, []violation.Violation{v}, nil
}
