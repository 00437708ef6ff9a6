package cli

import (
	"github.com/spf13/cobra"
)

func newBaselineCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "baseline",
		Short: "Compare tweak (new fuzzer) to baseline",
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
			return a.Baseline(cmd.Context(), ds, cmd.OutOrStdout())
		},
	}
}

func newBestCompetitorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "best-competitor",
		Short: "Two-way test against best competitor",
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
			return a.BestCompetitor(cmd.Context(), ds, cmd.OutOrStdout())
		},
	}
}

func newImprovementCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "improvement",
		Short: "Calculate average improvement and improvement per target",
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
			return a.Improvement(ds, cmd.OutOrStdout())
		},
	}
}

func newTraditionalCmd(opts *rootOptions) *cobra.Command {
	var onlyBestCompetitor bool

	cmd := &cobra.Command{
		Use:   "traditional",
		Short: "Traditional MWU instead of bootstrap-based test",
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
			return a.Traditional(ds, onlyBestCompetitor, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&onlyBestCompetitor, "only-best-competitor", false, "Compare only against the best competitor")

	return cmd
}

func newFullComparisonCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "full-comparison",
		Short: "Run a full ANOVA+posthoc of all data",
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
			return a.FullComparison(cmd.Context(), ds, cmd.OutOrStdout())
		},
	}
}
