package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/benedict2310/fuzzstats/internal/output"
	"github.com/benedict2310/fuzzstats/internal/store"
	"github.com/benedict2310/fuzzstats/pkg/dataset"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect and export the run store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newRunsListCmd())
	cmd.AddCommand(newRunsExportCmd())

	return cmd
}

func newRunsListCmd() *cobra.Command {
	var dbPath string
	var formatFlag string
	var runtime string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored campaign runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			rows, err := listRuns(cmd, dbPath, runtime)
			if err != nil {
				return err
			}

			if format != output.FormatTable {
				type runPayload struct {
					ID        string  `json:"id" yaml:"id"`
					Fuzzer    string  `json:"fuzzer" yaml:"fuzzer"`
					Target    string  `json:"target" yaml:"target"`
					Coverage  float64 `json:"coverage" yaml:"coverage"`
					Runtime   string  `json:"runtime" yaml:"runtime"`
					Source    string  `json:"source" yaml:"source"`
					CreatedAt string  `json:"createdAt" yaml:"createdAt"`
				}
				payload := make([]runPayload, 0, len(rows))
				for _, r := range rows {
					payload = append(payload, runPayload(r))
				}
				return output.WriteStructured(cmd.OutOrStdout(), format, payload)
			}

			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{
					r.ID,
					r.Target,
					r.Fuzzer,
					strconv.FormatFloat(r.Coverage, 'f', -1, 64),
					r.Runtime,
					output.Truncate(r.Source, 40),
				})
			}
			return output.WriteTable(cmd.OutOrStdout(), []string{"ID", "TARGET", "FUZZER", "COVERAGE", "RUNTIME", "SOURCE"}, table)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Run store database file")
	cmd.Flags().StringVarP(&formatFlag, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().StringVar(&runtime, "runtime", "", "Only list runs with this runtime label")

	return cmd
}

func newRunsExportCmd() *cobra.Command {
	var dbPath string
	var runtime string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored runs as a dataset YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := listRuns(cmd, dbPath, runtime)
			if err != nil {
				return err
			}

			results := make([]dataset.CampaignResult, 0, len(rows))
			for _, r := range rows {
				results = append(results, dataset.CampaignResult{
					RunID:    r.ID,
					Fuzzer:   r.Fuzzer,
					Target:   r.Target,
					Coverage: r.Coverage,
					Runtime:  r.Runtime,
					Source:   r.Source,
				})
			}

			data, err := yaml.Marshal(dataset.Aggregate(results))
			if err != nil {
				return fmt.Errorf("encode dataset: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Run store database file")
	cmd.Flags().StringVar(&runtime, "runtime", "", "Only export runs with this runtime label")

	return cmd
}

func listRuns(cmd *cobra.Command, dbPath, runtime string) ([]store.RunRow, error) {
	if dbPath == "" {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return nil, fmt.Errorf("required flag(s) \"db\" not set")
	}
	db, err := store.Open(store.DefaultOptions(dbPath))
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := store.RunMigrations(cmd.Context(), db); err != nil {
		return nil, err
	}
	return store.NewQueries(db).ListRuns(cmd.Context(), runtime)
}
