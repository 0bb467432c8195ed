package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"wardrobe/internal/view"
)

// ListResult is the JSON payload of the list command.
type ListResult struct {
	Outfits []OutfitSummary `json:"outfits"`
	Shown   int             `json:"shown"`
	Total   int             `json:"total"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		search    string
		sortMode  string
		favorites bool
		minRating int
		staleDays int
		tag       string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outfits",
		Long: `List outfits with optional filtering, searching and sorting.

Sort modes: favorite-first, favorites-only, created-asc, created-desc,
rating-asc, rating-desc, name-asc, name-desc, wear-asc, wear-desc,
worn-asc, worn-desc. An unrecognized mode leaves the order unchanged.`,
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

			if sortMode == "" {
				sortMode = env.cfg.DefaultSort
			}
			spec := view.Spec{
				Search: search,
				Sort:   view.Sort(sortMode),
				Filter: view.Filter{
					FavoriteOnly: favorites,
					MinRating:    minRating,
					StaleDays:    staleDays,
					Tag:          tag,
				},
			}

			v, err := env.sess.Refresh(cmd.Context(), spec)
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "list outfits", err)
			}

			if formatter.Format == "json" {
				return formatter.Success(ListResult{
					Outfits: summarizeAll(v.Sequence),
					Shown:   len(v.Sequence),
					Total:   v.Total,
				})
			}

			if v.Total == 0 {
				fmt.Fprintln(formatter.Writer, "No outfits yet. Use 'wardrobe add' to create one.")
				return nil
			}
			for _, o := range v.Sequence {
				fmt.Fprintln(formatter.Writer, outfitLine(o))
			}
			fmt.Fprintf(formatter.Writer, "\nShowing %d of %d outfit(s)\n", len(v.Sequence), v.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "match against name and notes")
	cmd.Flags().StringVar(&sortMode, "sort", "", "sort mode (default from config)")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "favorites only")
	cmd.Flags().IntVar(&minRating, "min-rating", 0, "minimum rating")
	cmd.Flags().IntVar(&staleDays, "stale", 0, "only outfits not worn in N days (or never)")
	cmd.Flags().StringVar(&tag, "tag", "", "only outfits carrying this tag")

	return cmd
}
