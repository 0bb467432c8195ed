package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// NewUndoCommand creates the undo command.
func NewUndoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Restore the last delete",
		Long: `Restore the outfits removed by the most recent delete.

Works once per delete and only within the configured undo window; after
that there is nothing to undo.`,
		Args:          cobra.NoArgs,
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

			path := env.undoPath()
			info, err := os.Stat(path)
			if err != nil {
				_ = formatter.Error(ErrCodeNoUndo, "nothing to undo", nil)
				return NewExitError(ExitFailure, "nothing to undo")
			}

			window := time.Duration(env.cfg.UndoWindowSeconds) * time.Second
			if time.Since(info.ModTime()) > window {
				_ = os.Remove(path)
				_ = formatter.Error(ErrCodeNoUndo, "undo window expired", nil)
				return NewExitError(ExitFailure, "undo window expired")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("read undo snapshot: %v", err), nil)
				return WrapExitError(ExitCommandError, "read undo snapshot", err)
			}

			res, err := env.sess.Import(cmd.Context(), data)
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "undo", err)
			}

			// Single use: the snapshot is spent whether or not every record
			// could be restored.
			_ = os.Remove(path)

			if formatter.Format == "json" {
				return formatter.Success(res)
			}
			fmt.Fprintf(formatter.Writer, "Restored %d outfit(s)\n", res.Added)
			return nil
		},
	}

	return cmd
}
