package cli

import (
	"github.com/spf13/cobra"

	"github.com/benedict2310/fuzzstats/internal/report"
)

func newGenTableCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gen-table",
		Short: "Generate LaTeX table body for paper",
		Long: "Generate a LaTeX table body with one row per target: the tweak is\n" +
			"tested against its best competitor and annotated with the A12 effect\n" +
			"size, bold when the difference is significant. Diagnostics go to\n" +
			"stderr so stdout holds only the table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := resolveSettings(cmd, opts)
			if err != nil {
				return err
			}
			ds, err := loadData(cmd.Context(), st)
			if err != nil {
				return err
			}
			a := newAnalyzer(st, cmd.ErrOrStderr())
			rows, err := a.GenTable(cmd.Context(), ds, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return report.WriteLatexTable(cmd.OutOrStdout(), rows)
		},
	}
}
