package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JERPCorporation/jerp-compliance/internal/ledger"
)

// VerifyResult holds chain verification results.
type VerifyResult struct {
	Verified int  `json:"verified"`
	Intact   bool `json:"intact"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the ledger hash chain",
		Long: `Recompute every entry digest from genesis through the head and check
the chain links. Any edit to a stored entry is reported with the first
sequence number whose digest no longer matches.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, cmd)
		},
	}
	return cmd
}

func runVerify(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	if _, err := os.Stat(opts.DBPath); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("ledger database %q not found", opts.DBPath), err)
	}
	log, err := ledger.OpenSQLite(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer log.Close()

	l := ledger.New(log)
	formatter.VerboseLog("verifying chain in %s", opts.DBPath)

	n, err := l.Verify(cmd.Context())
	if err != nil {
		var ce *ledger.ChainIntegrityError
		if errors.As(err, &ce) {
			if f := formatter.Failure(fmt.Sprintf("chain broken at entry %d: %s", ce.Seq, ce.Reason)); f != nil {
				return f
			}
			return WrapExitError(ExitFailure, "ledger chain verification failed", err)
		}
		return WrapExitError(ExitCommandError, "verification could not run", err)
	}

	result := VerifyResult{Verified: n, Intact: true}
	return formatter.SuccessText(fmt.Sprintf("chain intact: %d entries verified\n", n), result)
}
