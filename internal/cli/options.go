package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benedict2310/fuzzstats/internal/analysis"
	"github.com/benedict2310/fuzzstats/internal/config"
	"github.com/benedict2310/fuzzstats/internal/rstats"
	"github.com/benedict2310/fuzzstats/internal/store"
	"github.com/benedict2310/fuzzstats/pkg/dataset"
)

// rootOptions holds the global flag values shared by all analysis
// subcommands.
type rootOptions struct {
	configPath       string
	dataPath         string
	baseline         string
	tweak            string
	expectedRuns     int
	expectedRuntime  string
	useMean          bool
	noEffectSize     bool
	allowMissingRuns bool
	evalTargets      []string
	debug            bool
}

func addGlobalFlags(cmd *cobra.Command, opts *rootOptions) {
	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "Config file (default $"+config.EnvConfigPath+" or ~/.fuzzstats/config.yaml)")
	f.StringVar(&opts.dataPath, "data", "", "Dataset YAML file or sqlite run store")
	f.StringVar(&opts.baseline, "baseline", "", "Baseline fuzzer")
	f.StringVar(&opts.tweak, "tweak", "", "New fuzzer (the 'tweak' of the baseline)")
	f.IntVar(&opts.expectedRuns, "expected-runs", 0, "Number of runs we expect per fuzzer and target")
	f.StringVar(&opts.expectedRuntime, "expected-runtime", "", "Only use runs with this runtime (store data only)")
	f.BoolVar(&opts.useMean, "use-mean", false, "Use mean instead of median")
	f.BoolVar(&opts.noEffectSize, "no-effect-size", false, "Do not calculate effect size")
	f.BoolVar(&opts.allowMissingRuns, "allow-missing-runs", false, "Skip fuzzers with missing runs instead of failing")
	f.StringSliceVar(&opts.evalTargets, "eval-targets", nil, "Only analyze the named evaluation targets")
	f.BoolVar(&opts.debug, "debug", false, "Debug output")
}

// settings is the merged view of config file and flags, flags winning.
type settings struct {
	cfg         config.Config
	analysis    analysis.Options
	evalTargets []string
	dataPath    string
	debug       bool
}

func resolveSettings(cmd *cobra.Command, opts *rootOptions) (settings, error) {
	cfg, _, err := config.Load(opts.configPath)
	if err != nil {
		return settings{}, err
	}

	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}
	if changed("baseline") {
		cfg.Baseline = opts.baseline
	}
	if changed("tweak") {
		cfg.Tweak = opts.tweak
	}
	if changed("expected-runs") {
		cfg.ExpectedRuns = opts.expectedRuns
	}
	if changed("expected-runtime") {
		cfg.ExpectedRuntime = opts.expectedRuntime
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	return settings{
		cfg: cfg,
		analysis: analysis.Options{
			Baseline:         cfg.Baseline,
			Tweak:            cfg.Tweak,
			ExpectedRuns:     cfg.ExpectedRuns,
			UseMean:          opts.useMean,
			NoEffectSize:     opts.noEffectSize,
			AllowMissingRuns: opts.allowMissingRuns,
			MinSamples:       cfg.MinSamples,
		},
		evalTargets: opts.evalTargets,
		dataPath:    opts.dataPath,
		debug:       opts.debug,
	}, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newAnalyzer(st settings, logw io.Writer) *analysis.Analyzer {
	return &analysis.Analyzer{
		Comparer: &rstats.Runner{
			ScriptPath: st.cfg.RScript,
			Bin:        st.cfg.RscriptBin,
			Alpha:      st.cfg.Alpha,
			Resamples:  st.cfg.Resamples,
		},
		Opts:   st.analysis,
		Logger: newLogger(logw, st.debug),
	}
}

// loadData reads the dataset named by --data: a YAML dataset file, or a
// sqlite run store whose runs are aggregated on the fly.
func loadData(ctx context.Context, st settings) (dataset.Dataset, error) {
	path := strings.TrimSpace(st.dataPath)
	if path == "" {
		return dataset.Dataset{}, fmt.Errorf("required flag \"data\" not set")
	}

	var ds dataset.Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		var err error
		ds, err = dataset.LoadFile(path)
		if err != nil {
			return dataset.Dataset{}, err
		}
	case ".db", ".sqlite", ".sqlite3":
		db, err := store.Open(store.DefaultOptions(path))
		if err != nil {
			return dataset.Dataset{}, err
		}
		defer db.Close()
		if err := store.RunMigrations(ctx, db); err != nil {
			return dataset.Dataset{}, err
		}
		results, err := store.NewQueries(db).LoadResults(ctx, st.cfg.ExpectedRuntime)
		if err != nil {
			return dataset.Dataset{}, err
		}
		ds = dataset.Aggregate(results)
	default:
		return dataset.Dataset{}, fmt.Errorf("unsupported data file %s (expected .yaml or .db)", path)
	}

	ds = ds.Filter(st.evalTargets)
	if len(ds.Targets) == 0 {
		return dataset.Dataset{}, &dataset.ValidationError{Reason: "no targets to analyze"}
	}
	return ds, nil
}
