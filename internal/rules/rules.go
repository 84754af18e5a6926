// Package rules holds the ComplianceRule configuration consumed by the
// labor and finance engines.
//
// Rules carry the parameterized statutory thresholds (overtime triggers,
// minimum wages, materiality percentages) so a regulatory update is a
// configuration change, not a recompile. A Set is resolved explicitly per
// evaluation call; there is no process-wide mutable default, so concurrent
// evaluations under different jurisdictions cannot race on shared state.
package rules

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// Rule is one configured compliance rule.
type Rule struct {
	// Code uniquely identifies the regulation, e.g. "CA_LABOR_CODE_512".
	Code string

	// Name is the human-readable rule title.
	Name string

	// Family groups rules by regulation body: "CA_LABOR", "FLSA",
	// "GAAP", "IFRS".
	Family string

	// Severity is the default severity for violations of this rule.
	Severity violation.Severity

	// Active inactive rules are refused at resolution time rather than
	// evaluated with guessed defaults.
	Active bool

	// Params holds the rule's numeric thresholds as exact decimals,
	// keyed by parameter name.
	Params map[string]decimal.Decimal
}

// Param returns a named threshold. A missing parameter is a
// configuration error: engines never substitute a default for an absent
// statutory figure.
func (r Rule) Param(name string) (decimal.Decimal, error) {
	p, ok := r.Params[name]
	if !ok {
		return decimal.Zero, &ConfigError{Code: r.Code, Param: name, Reason: "parameter not configured"}
	}
	return p, nil
}

// Set is an immutable collection of rules resolved per evaluation call.
type Set struct {
	byCode map[string]Rule
}

// NewSet builds a Set from the given rules. Later duplicates of the same
// code replace earlier ones, which lets callers layer jurisdiction
// overrides on top of a base pack.
func NewSet(rs ...Rule) *Set {
	s := &Set{byCode: make(map[string]Rule, len(rs))}
	for _, r := range rs {
		s.byCode[r.Code] = r
	}
	return s
}

// Resolve returns the active rule for code. A missing or inactive rule
// yields a ConfigError; the engine refuses to evaluate that rule rather
// than guessing.
func (s *Set) Resolve(code string) (Rule, error) {
	r, ok := s.byCode[code]
	if !ok {
		return Rule{}, &ConfigError{Code: code, Reason: "rule not configured"}
	}
	if !r.Active {
		return Rule{}, &ConfigError{Code: code, Reason: "rule is inactive"}
	}
	return r, nil
}

// Codes returns all configured rule codes in sorted order.
func (s *Set) Codes() []string {
	codes := make([]string, 0, len(s.byCode))
	for c := range s.byCode {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of configured rules.
func (s *Set) Len() int {
	return len(s.byCode)
}

// Merge returns a new Set with overlay's rules replacing s's on code
// collision. Neither input is mutated.
func (s *Set) Merge(overlay *Set) *Set {
	merged := &Set{byCode: make(map[string]Rule, len(s.byCode)+len(overlay.byCode))}
	for c, r := range s.byCode {
		merged.byCode[c] = r
	}
	for c, r := range overlay.byCode {
		merged.byCode[c] = r
	}
	return merged
}

// validate checks structural invariants of a rule loaded from a pack.
func (r Rule) validate() error {
	if r.Code == "" {
		return fmt.Errorf("rule code is required")
	}
	switch r.Severity {
	case violation.SeverityLow, violation.SeverityMedium, violation.SeverityHigh, violation.SeverityCritical:
	default:
		return fmt.Errorf("rule %s: unknown severity %q", r.Code, r.Severity)
	}
	if r.Family == "" {
		return fmt.Errorf("rule %s: family is required", r.Code)
	}
	for name, p := range r.Params {
		if p.IsNegative() {
			return fmt.Errorf("rule %s: parameter %s must not be negative", r.Code, name)
		}
	}
	return nil
}
