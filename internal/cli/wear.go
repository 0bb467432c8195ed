package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"wardrobe/internal/catalog"
)

// NewWearCommand creates the wear command.
func NewWearCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wear <id>...",
		Short:         "Record that outfits were worn today",
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

			var worn []OutfitSummary
			failed := 0
			for _, id := range args {
				o, err := env.sess.WearToday(cmd.Context(), id)
				if err != nil {
					failed++
					if errors.Is(err, catalog.ErrNotFound) {
						formatter.VerboseLog("not found: %s", id)
						continue
					}
					_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
					return WrapExitError(ExitCommandError, "record wear", err)
				}
				worn = append(worn, summarize(o))
				if formatter.Format != "json" {
					fmt.Fprintf(formatter.Writer, "%s  now worn %d time(s)\n", o.ID, o.WearCount)
				}
			}

			if formatter.Format == "json" {
				if err := formatter.Success(worn); err != nil {
					return err
				}
			}
			if failed > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d outfit(s) not found", failed))
			}
			return nil
		},
	}

	return cmd
}
