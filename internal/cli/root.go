package cli

import "github.com/spf13/cobra"

// NewRootCmd builds the fuzzstats root command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "fuzzstats",
		Short: "Statistical comparison of fuzzing campaign results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addGlobalFlags(cmd, opts)

	cmd.AddCommand(newGenTableCmd(opts))
	cmd.AddCommand(newBestCompetitorCmd(opts))
	cmd.AddCommand(newImprovementCmd(opts))
	cmd.AddCommand(newTraditionalCmd(opts))
	cmd.AddCommand(newBaselineCmd(opts))
	cmd.AddCommand(newFullComparisonCmd(opts))
	cmd.AddCommand(newIngestCmd(opts))
	cmd.AddCommand(newRunsCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}
