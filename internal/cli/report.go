package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/ledger"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/report"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	From       string
	To         string
	ConfigPath string
	ActorID    string
	ActorEmail string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a compliance report",
		Long: `Aggregate recorded violations into a compliance summary: counts by
kind, severity and status, exact total monetary impact, top regulation
codes, and a weighted compliance score. Generation is recorded in the
ledger as an audited event.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "window start, RFC 3339 (default open)")
	cmd.Flags().StringVar(&opts.To, "to", "", "window end, RFC 3339 (default open)")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "scoring config YAML (default built-in)")
	cmd.Flags().StringVar(&opts.ActorID, "actor", "", "actor id recorded in the ledger")
	cmd.Flags().StringVar(&opts.ActorEmail, "actor-email", "", "actor email recorded in the ledger")
	cmd.MarkFlagRequired("actor")

	return cmd
}

func runReport(rootOpts *RootOptions, opts *ReportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	ctx := cmd.Context()

	window, err := parseWindow(opts.From, opts.To)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid window", err)
	}

	cfg := report.DefaultScoreConfig()
	if opts.ConfigPath != "" {
		cfg, err = report.LoadScoreConfig(opts.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid scoring config", err)
		}
	}

	if _, err := os.Stat(rootOpts.DBPath); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("ledger database %q not found", rootOpts.DBPath), err)
	}
	log, err := ledger.OpenSQLite(rootOpts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	l := ledger.New(log)
	defer l.Close()

	svc, err := compliance.NewService(ctx, l)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to replay ledger", err)
	}

	gen := report.NewGenerator(svc, l)
	r, err := gen.Generate(ctx, window, cfg, ledger.Actor{ID: opts.ActorID, Email: opts.ActorEmail})
	if err != nil {
		return WrapExitError(ExitCommandError, "report generation failed", err)
	}

	return formatter.SuccessText(formatReportText(r), r.ToCanonicalMap())
}

func parseWindow(from, to string) (report.Window, error) {
	var w report.Window
	var err error
	if from != "" {
		if w.From, err = time.Parse(time.RFC3339, from); err != nil {
			return report.Window{}, fmt.Errorf("bad --from: %w", err)
		}
	}
	if to != "" {
		if w.To, err = time.Parse(time.RFC3339, to); err != nil {
			return report.Window{}, fmt.Errorf("bad --to: %w", err)
		}
	}
	if !w.From.IsZero() && !w.To.IsZero() && w.To.Before(w.From) {
		return report.Window{}, fmt.Errorf("--to precedes --from")
	}
	return w, nil
}

func formatReportText(r report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compliance report (generated %s, ledger entry %d)\n",
		r.GeneratedAt.Format(time.RFC3339), r.LedgerSeq)
	fmt.Fprintf(&b, "  violations: %d (labor %d, financial %d)\n",
		r.TotalViolations, r.ByKind[violation.KindLaborLaw], r.ByKind[violation.KindFinancial])
	fmt.Fprintf(&b, "  status: open %d, in progress %d, resolved %d, dismissed %d\n",
		r.ByStatus[violation.StatusOpen], r.ByStatus[violation.StatusInProgress],
		r.ByStatus[violation.StatusResolved], r.ByStatus[violation.StatusDismissed])
	fmt.Fprintf(&b, "  severity: low %d, medium %d, high %d, critical %d\n",
		r.BySeverity[violation.SeverityLow], r.BySeverity[violation.SeverityMedium],
		r.BySeverity[violation.SeverityHigh], r.BySeverity[violation.SeverityCritical])
	fmt.Fprintf(&b, "  total impact: $%s\n", money.FormatCurrency(r.TotalImpact))
	fmt.Fprintf(&b, "  compliance score: %d/100\n", r.ComplianceScore)
	fmt.Fprintf(&b, "  compliance rate: %s%%\n", r.ComplianceRate.StringFixed(2))
	if len(r.TopRegulations) > 0 {
		fmt.Fprintf(&b, "  top regulations:\n")
		for _, rc := range r.TopRegulations {
			fmt.Fprintf(&b, "    %-24s %d\n", rc.Code, rc.Count)
		}
	}
	return b.String()
}
