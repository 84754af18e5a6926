package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/ledger"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// ViolationsOptions holds flags for the violations command.
type ViolationsOptions struct {
	Kind       string
	Status     string
	Severity   string
	Regulation string
	EntityID   string
	AfterSeq   int64
	Limit      int
}

// NewViolationsCommand creates the violations command.
func NewViolationsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ViolationsOptions{}

	cmd := &cobra.Command{
		Use:   "violations",
		Short: "List recorded violations",
		Long: `List violations reconstructed from the ledger, in ledger order.
Filters combine; --after-seq and --limit page through long histories.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViolations(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "filter by kind (LABOR_LAW|FINANCIAL)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status (OPEN|IN_PROGRESS|RESOLVED|DISMISSED)")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "filter by severity (LOW|MEDIUM|HIGH|CRITICAL)")
	cmd.Flags().StringVar(&opts.Regulation, "regulation", "", "filter by regulation code")
	cmd.Flags().StringVar(&opts.EntityID, "entity", "", "filter by entity id")
	cmd.Flags().Int64Var(&opts.AfterSeq, "after-seq", 0, "return violations after this ledger sequence")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum rows (0 = all)")

	return cmd
}

func runViolations(rootOpts *RootOptions, opts *ViolationsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	ctx := cmd.Context()

	query, err := buildQuery(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid filter", err)
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

	matches := svc.QueryViolations(query)
	formatter.VerboseLog("%d violation(s) matched", len(matches))
	return formatter.SuccessText(formatViolationsText(matches), violationRows(matches))
}

func buildQuery(opts *ViolationsOptions) (compliance.Query, error) {
	q := compliance.Query{
		Kind:       violation.Kind(opts.Kind),
		Status:     violation.Status(opts.Status),
		Severity:   violation.Severity(opts.Severity),
		Regulation: opts.Regulation,
		EntityID:   opts.EntityID,
		AfterSeq:   opts.AfterSeq,
		Limit:      opts.Limit,
	}
	if q.Status != "" && !q.Status.Valid() {
		return compliance.Query{}, fmt.Errorf("unknown status %q", opts.Status)
	}
	if q.Severity != "" && !q.Severity.Valid() {
		return compliance.Query{}, fmt.Errorf("unknown severity %q", opts.Severity)
	}
	switch q.Kind {
	case "", violation.KindLaborLaw, violation.KindFinancial:
	default:
		return compliance.Query{}, fmt.Errorf("unknown kind %q", opts.Kind)
	}
	if q.AfterSeq < 0 {
		return compliance.Query{}, fmt.Errorf("--after-seq must not be negative")
	}
	return q, nil
}

// violationRow is the JSON shape for one listed violation.
type violationRow struct {
	ID         string `json:"id"`
	Seq        int64  `json:"seq"`
	Kind       string `json:"kind"`
	Regulation string `json:"regulation"`
	Severity   string `json:"severity"`
	Status     string `json:"status"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Impact     string `json:"impact,omitempty"`
	DetectedAt string `json:"detected_at"`
}

func violationRows(vs []violation.Violation) []violationRow {
	rows := make([]violationRow, len(vs))
	for i, v := range vs {
		rows[i] = violationRow{
			ID:         v.ID,
			Seq:        v.Seq,
			Kind:       string(v.Kind),
			Regulation: v.Regulation,
			Severity:   string(v.Severity),
			Status:     string(v.Status),
			EntityType: v.EntityType,
			EntityID:   v.EntityID,
			DetectedAt: v.DetectedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if v.Impact != nil {
			rows[i].Impact = money.FormatCurrency(*v.Impact)
		}
	}
	return rows
}

func formatViolationsText(vs []violation.Violation) string {
	if len(vs) == 0 {
		return "no violations\n"
	}
	var b strings.Builder
	for _, v := range vs {
		impact := "-"
		if v.Impact != nil {
			impact = "$" + money.FormatCurrency(*v.Impact)
		}
		fmt.Fprintf(&b, "%-6d %-10s %-24s %-8s %-11s %-10s %s/%s\n",
			v.Seq, v.Kind, v.Regulation, v.Severity, v.Status, impact,
			v.EntityType, v.EntityID)
	}
	return b.String()
}
