package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/benedict2310/fuzzstats/internal/store"
	"github.com/benedict2310/fuzzstats/pkg/extract"
)

func newIngestCmd(opts *rootOptions) *cobra.Command {
	var dbPath string
	var fuzzer string
	var target string
	var format string
	var runtime string

	cmd := &cobra.Command{
		Use:   "ingest [flags] artifact...",
		Short: "Extract final coverage from raw campaign artifacts into the run store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for flag, v := range map[string]string{"db": dbPath, "fuzzer": fuzzer, "target": target} {
				if strings.TrimSpace(v) == "" {
					fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
					return fmt.Errorf("required flag(s) %q not set", flag)
				}
			}
			st, err := resolveSettings(cmd, opts)
			if err != nil {
				return err
			}
			if runtime == "" {
				runtime = st.cfg.ExpectedRuntime
			}

			ex, err := extract.New(format)
			if err != nil {
				return err
			}

			db, err := store.Open(store.DefaultOptions(dbPath))
			if err != nil {
				return err
			}
			defer db.Close()
			if err := store.RunMigrations(cmd.Context(), db); err != nil {
				return err
			}

			// One transaction per batch: a bad artifact must not leave a
			// partial ingest behind, or re-running would duplicate runs.
			tx, err := db.BeginTx(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("begin ingest batch: %w", err)
			}
			defer func() { _ = tx.Rollback() }()
			queries := store.NewQueries(tx)

			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("open artifact %s: %w", path, err)
				}
				coverage, err := ex.Extract(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				id, err := store.NewRunID(time.Now())
				if err != nil {
					return err
				}
				row := store.RunRow{
					ID:       id,
					Fuzzer:   fuzzer,
					Target:   target,
					Coverage: coverage,
					Runtime:  runtime,
					Source:   path,
				}
				if err := queries.InsertRun(cmd.Context(), row); err != nil {
					return err
				}
			}

			if err := tx.Commit(); err != nil {
				return fmt.Errorf("commit ingest batch: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d run(s) for %s/%s into %s\n", len(args), target, fuzzer, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Run store database file")
	cmd.Flags().StringVar(&fuzzer, "fuzzer", "", "Fuzzer that produced the artifacts")
	cmd.Flags().StringVar(&target, "target", "", "Evaluation target the fuzzer ran against")
	cmd.Flags().StringVar(&format, "format", "afl-stats", "Artifact format ("+strings.Join(extract.Formats(), ", ")+")")
	cmd.Flags().StringVar(&runtime, "runtime", "", "Campaign runtime label (default from config expectedRuntime)")

	return cmd
}
