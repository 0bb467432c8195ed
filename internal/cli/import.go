package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wardrobe/internal/transfer"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a transfer document",
		Long: `Import outfits from a transfer document produced by 'wardrobe export'.

A document that is not valid JSON or lacks the outfit list is rejected as a
whole; nothing is applied. Entries without a usable photo are skipped,
other malformed fields fall back to defaults. Ids are kept when free and
minted fresh when already taken.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			data, err := os.ReadFile(args[0])
			if err != nil {
				_ = formatter.Error(ErrCodeBadInput, fmt.Sprintf("read document: %v", err), nil)
				return WrapExitError(ExitCommandError, "read document", err)
			}

			env, err := openEnv(rootOpts)
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return err
			}
			defer env.Close()

			res, err := env.sess.Import(cmd.Context(), data)
			if err != nil {
				var formatErr *transfer.FormatError
				if errors.As(err, &formatErr) {
					_ = formatter.Error(ErrCodeFormat, fmt.Sprintf("not a transfer document: %s", formatErr.Reason), nil)
					return WrapExitError(ExitFailure, "invalid document", err)
				}
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "import", err)
			}

			if formatter.Format == "json" {
				return formatter.Success(res)
			}
			fmt.Fprintf(formatter.Writer, "Imported %d outfit(s), skipped %d entry(ies)\n", res.Added, res.Skipped)
			return nil
		},
	}

	return cmd
}
