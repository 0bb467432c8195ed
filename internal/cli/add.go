package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wardrobe/internal/imaging"
	"wardrobe/internal/session"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name     string
		rating   float64
		favorite bool
		tags     string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add <image-file>",
		Short: "Add an outfit from a photo",
		Long: `Add a new outfit record from an image file.

The photo is decoded, bounded to the configured maximum side and re-encoded
as JPEG before it is stored. A file that cannot be decoded as an image is
rejected and nothing is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			data, err := os.ReadFile(args[0])
			if err != nil {
				_ = formatter.Error(ErrCodeBadInput, fmt.Sprintf("read image: %v", err), nil)
				return WrapExitError(ExitCommandError, "read image", err)
			}

			env, err := openEnv(rootOpts)
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return err
			}
			defer env.Close()

			o, err := env.sess.Create(cmd.Context(), session.CreateInput{
				Name:     name,
				Rating:   rating,
				Favorite: favorite,
				TagText:  tags,
				Notes:    notes,
				Image:    data,
			})
			if err != nil {
				var decodeErr *imaging.DecodeError
				if errors.As(err, &decodeErr) {
					_ = formatter.Error(ErrCodeBadInput, fmt.Sprintf("%s is not a decodable image", args[0]), nil)
					return WrapExitError(ExitFailure, "undecodable image", err)
				}
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "add outfit", err)
			}

			if formatter.Format == "json" {
				return formatter.Success(summarize(o))
			}
			fmt.Fprintf(formatter.Writer, "Added %s\n", o.ID)
			fmt.Fprintf(formatter.Writer, "  %s\n", outfitLine(o))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "outfit name (blank gets a placeholder)")
	cmd.Flags().Float64Var(&rating, "rating", 0, "rating 0-5 (values are rounded and clamped)")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "mark as favorite")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}
