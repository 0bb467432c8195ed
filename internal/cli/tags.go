package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// TagCount is one row of the tags command output.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// NewTagsCommand creates the tags command.
func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tags",
		Short:         "List all tags with usage counts",
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

			records, err := env.store.GetAll(cmd.Context())
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "list tags", err)
			}

			counts := make(map[string]int)
			for _, o := range records {
				for _, t := range o.Tags {
					counts[t]++
				}
			}

			rows := make([]TagCount, 0, len(counts))
			for tag, n := range counts {
				rows = append(rows, TagCount{Tag: tag, Count: n})
			}
			sort.Slice(rows, func(i, j int) bool {
				if rows[i].Count != rows[j].Count {
					return rows[i].Count > rows[j].Count
				}
				return rows[i].Tag < rows[j].Tag
			})

			if formatter.Format == "json" {
				return formatter.Success(rows)
			}

			if len(rows) == 0 {
				fmt.Fprintln(formatter.Writer, "No tags yet.")
				return nil
			}
			for _, r := range rows {
				fmt.Fprintf(formatter.Writer, "%-24s %d\n", r.Tag, r.Count)
			}
			return nil
		},
	}

	return cmd
}
