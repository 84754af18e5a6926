package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/ledger"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// Window bounds a report by detection time, inclusive on both ends.
// Zero bounds are open.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && t.After(w.To) {
		return false
	}
	return true
}

// RegulationCount is one row of the regulation ranking.
type RegulationCount struct {
	Code  string
	Count int
}

// Report is the aggregated compliance picture for a window.
type Report struct {
	GeneratedAt time.Time
	Window      Window

	TotalViolations int
	ByKind          map[violation.Kind]int
	BySeverity      map[violation.Severity]int
	ByStatus        map[violation.Status]int

	// TotalImpact sums every violation's monetary impact exactly.
	TotalImpact decimal.Decimal

	// ComplianceScore starts at 100 and deducts the configured penalty
	// for each violation still OPEN or IN_PROGRESS, floored at 0.
	ComplianceScore int

	// ComplianceRate is the percentage of violations in a terminal
	// state, overall and per kind. An empty window rates 100.
	ComplianceRate       decimal.Decimal
	ComplianceRateByKind map[violation.Kind]decimal.Decimal

	TopRegulations []RegulationCount

	// LedgerSeq is the sequence of the ledger entry this generation
	// appended.
	LedgerSeq uint64
}

// Generator builds reports from a compliance service and records each
// generation in the ledger.
type Generator struct {
	svc    *compliance.Service
	ledger *ledger.Ledger
	now    func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the generation timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator wires a generator to the service and its ledger.
func NewGenerator(svc *compliance.Service, l *ledger.Ledger, opts ...Option) *Generator {
	g := &Generator{svc: svc, ledger: l, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate aggregates every violation detected inside the window and
// appends a REPORT_GENERATED ledger entry attributed to the actor.
func (g *Generator) Generate(ctx context.Context, window Window, cfg ScoreConfig, actor ledger.Actor) (Report, error) {
	if err := validateScoreConfig(cfg); err != nil {
		return Report{}, fmt.Errorf("generate: %w", err)
	}

	all := g.svc.QueryViolations(compliance.Query{})

	r := Report{
		GeneratedAt: g.now().UTC(),
		Window:      window,
		ByKind: map[violation.Kind]int{
			violation.KindLaborLaw:  0,
			violation.KindFinancial: 0,
		},
		BySeverity: map[violation.Severity]int{
			violation.SeverityLow:      0,
			violation.SeverityMedium:   0,
			violation.SeverityHigh:     0,
			violation.SeverityCritical: 0,
		},
		ByStatus: map[violation.Status]int{
			violation.StatusOpen:       0,
			violation.StatusInProgress: 0,
			violation.StatusResolved:   0,
			violation.StatusDismissed:  0,
		},
		TotalImpact: money.Zero,
	}

	terminalByKind := map[violation.Kind]int{}
	byRegulation := map[string]int{}
	score := 100
	for _, v := range all {
		if !window.contains(v.DetectedAt) {
			continue
		}
		r.TotalViolations++
		r.ByKind[v.Kind]++
		r.BySeverity[v.Severity]++
		r.ByStatus[v.Status]++
		r.TotalImpact = r.TotalImpact.Add(v.ImpactOrZero())
		byRegulation[v.Regulation]++
		if v.Status.Terminal() {
			terminalByKind[v.Kind]++
		} else {
			score -= cfg.SeverityPenalties[string(v.Severity)]
		}
	}
	if score < 0 {
		score = 0
	}
	r.ComplianceScore = score

	terminal := terminalByKind[violation.KindLaborLaw] + terminalByKind[violation.KindFinancial]
	r.ComplianceRate = rate(terminal, r.TotalViolations)
	r.ComplianceRateByKind = map[violation.Kind]decimal.Decimal{
		violation.KindLaborLaw:  rate(terminalByKind[violation.KindLaborLaw], r.ByKind[violation.KindLaborLaw]),
		violation.KindFinancial: rate(terminalByKind[violation.KindFinancial], r.ByKind[violation.KindFinancial]),
	}

	r.TopRegulations = rankRegulations(byRegulation, cfg.TopRegulations)

	entry, err := g.ledger.Append(ctx, ledger.Draft{
		EventType: ledger.EventReportGenerated,
		Actor:     actor,
		Payload: map[string]any{
			"window_from":      formatBound(window.From),
			"window_to":        formatBound(window.To),
			"total_violations": int64(r.TotalViolations),
			"compliance_score": int64(r.ComplianceScore),
			"compliance_rate":  r.ComplianceRate.StringFixed(2),
			"total_impact":     money.FormatCurrency(r.TotalImpact),
		},
	})
	if err != nil {
		return Report{}, err
	}
	r.LedgerSeq = entry.Seq
	return r, nil
}

// rate computes part/total as a percentage at currency scale. A zero
// total is fully compliant.
func rate(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.New(100, 0)
	}
	hundred := decimal.New(100, 0)
	return money.RoundCurrency(decimal.New(int64(part), 0).Mul(hundred).Div(decimal.New(int64(total), 0)))
}

// rankRegulations orders codes by count descending, ties broken by
// code, truncated to limit.
func rankRegulations(counts map[string]int, limit int) []RegulationCount {
	ranked := make([]RegulationCount, 0, len(counts))
	for code, count := range counts {
		ranked = append(ranked, RegulationCount{Code: code, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Code < ranked[j].Code
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// ToCanonicalMap renders the report for canonical JSON serialization,
// the form golden tests and the CLI emit. Decimals become strings;
// counts stay integers.
func (r Report) ToCanonicalMap() map[string]any {
	byKind := map[string]any{}
	for k, n := range r.ByKind {
		byKind[string(k)] = int64(n)
	}
	bySeverity := map[string]any{}
	for k, n := range r.BySeverity {
		bySeverity[string(k)] = int64(n)
	}
	byStatus := map[string]any{}
	for k, n := range r.ByStatus {
		byStatus[string(k)] = int64(n)
	}
	rateByKind := map[string]any{}
	for k, d := range r.ComplianceRateByKind {
		rateByKind[string(k)] = d.StringFixed(2)
	}
	top := make([]any, len(r.TopRegulations))
	for i, rc := range r.TopRegulations {
		top[i] = map[string]any{"code": rc.Code, "count": int64(rc.Count)}
	}

	return map[string]any{
		"by_kind":                 byKind,
		"by_severity":             bySeverity,
		"by_status":               byStatus,
		"compliance_rate":         r.ComplianceRate.StringFixed(2),
		"compliance_rate_by_kind": rateByKind,
		"compliance_score":        int64(r.ComplianceScore),
		"generated_at":            r.GeneratedAt.UTC().Format(time.RFC3339Nano),
		"ledger_seq":              int64(r.LedgerSeq),
		"top_regulations":         top,
		"total_impact":            money.FormatCurrency(r.TotalImpact),
		"total_violations":        int64(r.TotalViolations),
		"window": map[string]any{
			"from": formatBound(r.Window.From),
			"to":   formatBound(r.Window.To),
		},
	}
}
