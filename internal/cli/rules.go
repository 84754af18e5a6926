package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JERPCorporation/jerp-compliance/internal/rules"
)

// NewRulesCommand creates the rules command group.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rule packs",
	}
	cmd.AddCommand(newRulesValidateCommand(rootOpts))
	cmd.AddCommand(newRulesListCommand(rootOpts))
	return cmd
}

// RulesResult holds rule pack inspection results.
type RulesResult struct {
	Codes []string `json:"codes"`
	Count int      `json:"count"`
}

func newRulesValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pack-dir>",
		Short: "Validate a CUE rule pack",
		Long: `Load a CUE rule pack and check every rule definition: known
severities, families, and decimal-parseable parameters. Faster feedback
than waiting for an evaluation to fail at resolve time.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			set, err := rules.Load(args[0])
			if err != nil {
				if f := formatter.Failure(err.Error()); f != nil {
					return f
				}
				return WrapExitError(ExitFailure, "rule pack invalid", err)
			}

			codes := set.Codes()
			formatter.VerboseLog("loaded %d rule(s) from %s", len(codes), args[0])
			return formatter.SuccessText(
				fmt.Sprintf("rule pack valid: %d rule(s)\n%s", len(codes), codeLines(codes)),
				RulesResult{Codes: codes, Count: len(codes)},
			)
		},
	}
}

func newRulesListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in default rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			codes := rules.DefaultSet().Codes()
			return formatter.SuccessText(codeLines(codes), RulesResult{Codes: codes, Count: len(codes)})
		},
	}
}

func codeLines(codes []string) string {
	var b strings.Builder
	for _, code := range codes {
		fmt.Fprintf(&b, "  %s\n", code)
	}
	return b.String()
}
