package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete outfits",
		Long: `Delete one or more outfits.

The deleted records are snapshotted next to the database so a prompt
'wardrobe undo' can restore them. The snapshot expires after the configured
undo window.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			env, err := openEnv(rootOpts)
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return err
			}
			defer env.Close()

			res := env.sess.BulkDelete(cmd.Context(), args)

			// Persist the undo snapshot for the next invocation.
			if doc, _, ok := env.sess.UndoSnapshot(); ok && res.Applied > 0 {
				if err := os.WriteFile(env.undoPath(), doc, 0o600); err != nil {
					formatter.VerboseLog("undo snapshot not written: %v", err)
				}
			}

			if formatter.Format == "json" {
				if err := formatter.Success(res); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(formatter.Writer, "Deleted %d outfit(s), %d failed\n", res.Applied, res.Failed)
				if res.Applied > 0 {
					fmt.Fprintf(formatter.Writer, "Run 'wardrobe undo' within %ds to restore them.\n", env.cfg.UndoWindowSeconds)
				}
			}

			if res.Failed > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d outfit(s) could not be deleted", res.Failed))
			}
			return nil
		},
	}

	return cmd
}
