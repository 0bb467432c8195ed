package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wardrobe/internal/catalog"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	var imageOut string

	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one outfit in detail",
		Args:          cobra.ExactArgs(1),
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

			o, err := env.store.Get(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("outfit not found: %s", args[0]), nil)
					return NewExitError(ExitFailure, "outfit not found")
				}
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "show outfit", err)
			}

			if imageOut != "" {
				if err := os.WriteFile(imageOut, o.Image, 0o600); err != nil {
					_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("write image: %v", err), nil)
					return WrapExitError(ExitCommandError, "write image", err)
				}
				formatter.VerboseLog("wrote %d image bytes to %s", len(o.Image), imageOut)
			}

			if formatter.Format == "json" {
				return formatter.Success(summarize(o))
			}

			w := formatter.Writer
			fmt.Fprintf(w, "ID:       %s\n", o.ID)
			fmt.Fprintf(w, "Name:     %s\n", o.Name)
			fmt.Fprintf(w, "Rating:   %d/5\n", o.Rating)
			fmt.Fprintf(w, "Favorite: %t\n", o.Favorite)
			fmt.Fprintf(w, "Created:  %s\n", formatMillis(o.CreatedAt))
			if o.NeverWorn() {
				fmt.Fprintf(w, "Worn:     never\n")
			} else {
				fmt.Fprintf(w, "Worn:     %d time(s), last %s\n", o.WearCount, formatMillis(o.LastWornAt))
			}
			if len(o.Tags) > 0 {
				fmt.Fprintf(w, "Tags:     %s\n", strings.Join(o.Tags, ", "))
			}
			if o.Notes != "" {
				fmt.Fprintf(w, "Notes:\n%s\n", o.Notes)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&imageOut, "image-out", "", "write the stored JPEG to this path")

	return cmd
}
