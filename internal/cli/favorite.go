package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFavoriteCommand creates the favorite command.
func NewFavoriteCommand(rootOpts *RootOptions) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:           "favorite <id>...",
		Short:         "Mark outfits as favorites",
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

			res := env.sess.BulkFavorite(cmd.Context(), args, !remove)

			verb := "favorited"
			if remove {
				verb = "unfavorited"
			}
			if formatter.Format == "json" {
				if err := formatter.Success(res); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(formatter.Writer, "%d outfit(s) %s, %d failed\n", res.Applied, verb, res.Failed)
			}

			if res.Failed > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d outfit(s) could not be updated", res.Failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "clear the favorite flag instead")

	return cmd
}
