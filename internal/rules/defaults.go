package rules

import (
	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// DefaultSet returns the built-in statutory rule pack.
//
// The figures here are the shipped defaults; deployments layer a CUE rule
// pack on top (see Load) to track jurisdictional updates without a
// release.
func DefaultSet() *Set {
	return NewSet(
		Rule{
			Code: "CA_LABOR_CODE_510", Name: "California daily overtime",
			Family: "CA_LABOR", Severity: violation.SeverityHigh, Active: true,
			Params: params{
				"daily_overtime_threshold_hours": "8",
				"double_time_threshold_hours":    "12",
				"seventh_day_premium_hours":      "8",
			}.decimals(),
		},
		Rule{
			Code: "CA_LABOR_CODE_512", Name: "California meal breaks",
			Family: "CA_LABOR", Severity: violation.SeverityHigh, Active: true,
			Params: params{
				"first_meal_threshold_hours":  "5",
				"second_meal_threshold_hours": "10",
				"premium_hours":               "1",
			}.decimals(),
		},
		Rule{
			Code: "CA_LABOR_CODE_516", Name: "California rest breaks",
			Family: "CA_LABOR", Severity: violation.SeverityHigh, Active: true,
			Params: params{
				"block_hours":   "4",
				"premium_hours": "1",
			}.decimals(),
		},
		Rule{
			Code: "CA_LABOR_1182", Name: "California minimum wage",
			Family: "CA_LABOR", Severity: violation.SeverityCritical, Active: true,
			Params: params{"state_minimum_wage": "16.50"}.decimals(),
		},
		Rule{
			Code: "FLSA_207", Name: "FLSA weekly overtime",
			Family: "FLSA", Severity: violation.SeverityHigh, Active: true,
			Params: params{"weekly_overtime_threshold_hours": "40"}.decimals(),
		},
		Rule{
			Code: "FLSA_206", Name: "Federal minimum wage",
			Family: "FLSA", Severity: violation.SeverityCritical, Active: true,
			Params: params{"federal_minimum_wage": "7.25"}.decimals(),
		},
		Rule{
			Code: "FLSA_213", Name: "FLSA exemption tests",
			Family: "FLSA", Severity: violation.SeverityMedium, Active: true,
			Params: params{
				"weekly_salary_threshold":             "1128",
				"highly_compensated_annual_threshold": "151164",
			}.decimals(),
		},
		Rule{
			Code: "FLSA_212", Name: "FLSA child labor",
			Family: "FLSA", Severity: violation.SeverityCritical, Active: true,
			Params: params{
				"minimum_working_age":       "14",
				"hazardous_minimum_age":     "18",
				"youth_age_ceiling":         "16",
				"school_day_max_hours":      "3",
				"school_week_max_hours":     "18",
				"nonschool_day_max_hours":   "8",
				"nonschool_week_max_hours":  "40",
				"youth_earliest_start_hour": "7",
				"youth_latest_end_hour":     "19",
			}.decimals(),
		},
		Rule{
			Code: "FLSA_211", Name: "FLSA record keeping",
			Family: "FLSA", Severity: violation.SeverityMedium, Active: true,
		},
		Rule{
			Code: "GAAP_BALANCE", Name: "Balance sheet identity (GAAP)",
			Family: "GAAP", Severity: violation.SeverityCritical, Active: true,
			Params: params{"rounding_tolerance": "0"}.decimals(),
		},
		Rule{
			Code: "IFRS_BALANCE", Name: "Balance sheet identity (IFRS)",
			Family: "IFRS", Severity: violation.SeverityCritical, Active: true,
			Params: params{"rounding_tolerance": "0"}.decimals(),
		},
		Rule{
			Code: "GAAP_ASC606", Name: "Revenue recognition (ASC 606)",
			Family: "GAAP", Severity: violation.SeverityHigh, Active: true,
		},
		Rule{
			Code: "IFRS_15", Name: "Revenue recognition (IFRS 15)",
			Family: "IFRS", Severity: violation.SeverityHigh, Active: true,
		},
		Rule{
			Code: "GAAP_ASC330", Name: "Inventory valuation (GAAP)",
			Family: "GAAP", Severity: violation.SeverityHigh, Active: true,
			Params: params{"cogs_tolerance": "0"}.decimals(),
		},
		Rule{
			Code: "IFRS_IAS2", Name: "Inventory valuation (IAS 2)",
			Family: "IFRS", Severity: violation.SeverityCritical, Active: true,
			Params: params{"cogs_tolerance": "0"}.decimals(),
		},
		Rule{
			Code: "IFRS_IAS16", Name: "Component depreciation (IAS 16)",
			Family: "IFRS", Severity: violation.SeverityMedium, Active: true,
			Params: params{"component_materiality_percent": "10"}.decimals(),
		},
		Rule{
			Code: "GAAP_MATERIALITY", Name: "Materiality threshold (GAAP)",
			Family: "GAAP", Severity: violation.SeverityMedium, Active: true,
			Params: params{"materiality_percent": "5"}.decimals(),
		},
		Rule{
			Code: "IFRS_MATERIALITY", Name: "Materiality threshold (IFRS)",
			Family: "IFRS", Severity: violation.SeverityMedium, Active: true,
			Params: params{"materiality_percent": "5"}.decimals(),
		},
	)
}

// params is a literal-friendly map of decimal strings.
type params map[string]string

func (p params) decimals() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(p))
	for k, v := range p {
		out[k] = money.MustParse(v)
	}
	return out
}
