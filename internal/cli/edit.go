package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wardrobe/internal/catalog"
	"wardrobe/internal/session"
)

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name     string
		rating   float64
		favorite bool
		tags     string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an outfit's fields",
		Long: `Edit the name, rating, favorite flag, tags or notes of an outfit.

Only fields whose flags are given change; the rest keep their values. The
photo and creation time are immutable.`,
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

			cur, err := env.store.Get(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("outfit not found: %s", args[0]), nil)
					return NewExitError(ExitFailure, "outfit not found")
				}
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "edit outfit", err)
			}

			// Start from the current values and patch only the given flags.
			in := session.SaveInput{
				Name:     cur.Name,
				Rating:   float64(cur.Rating),
				Favorite: cur.Favorite,
				TagText:  strings.Join(cur.Tags, ", "),
				Notes:    cur.Notes,
			}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("rating") {
				in.Rating = rating
			}
			if cmd.Flags().Changed("favorite") {
				in.Favorite = favorite
			}
			if cmd.Flags().Changed("tags") {
				in.TagText = tags
			}
			if cmd.Flags().Changed("notes") {
				in.Notes = notes
			}

			o, err := env.sess.Save(cmd.Context(), args[0], in)
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "edit outfit", err)
			}

			if formatter.Format == "json" {
				return formatter.Success(summarize(o))
			}
			fmt.Fprintf(formatter.Writer, "Saved %s\n", o.ID)
			fmt.Fprintf(formatter.Writer, "  %s\n", outfitLine(o))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().Float64Var(&rating, "rating", 0, "new rating 0-5")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "favorite flag")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags (replaces existing)")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")

	return cmd
}
