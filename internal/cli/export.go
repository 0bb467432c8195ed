package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as a transfer document",
		Long: `Export every outfit, photos included, as a single JSON document.

The document is self-contained and can be imported into another catalog
with 'wardrobe import'. It is written to stdout unless --out is given.`,
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

			data, err := env.sess.Export(cmd.Context())
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "export", err)
			}

			// The document is the output format; --format does not apply here.
			if out == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("write export: %v", err), nil)
				return WrapExitError(ExitCommandError, "write export", err)
			}
			formatter.VerboseLog("wrote %d bytes to %s", len(data), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the document to this file instead of stdout")

	return cmd
}
