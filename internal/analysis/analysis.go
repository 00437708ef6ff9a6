// Package analysis wires datasets through the statistical comparisons and
// produces the per-subcommand reports.
package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/benedict2310/fuzzstats/internal/rstats"
	"github.com/benedict2310/fuzzstats/pkg/dataset"
	"github.com/benedict2310/fuzzstats/pkg/effect"
)

// Options carries the knobs shared by all analysis pipelines.
type Options struct {
	// Baseline is the reference fuzzer; Tweak is the fuzzer under
	// evaluation.
	Baseline string
	Tweak    string
	// ExpectedRuns is the number of campaign repetitions per group.
	ExpectedRuns int
	// UseMean selects the mean as the primary location measure instead of
	// the median (the median then becomes the tiebreaker).
	UseMean bool
	// NoEffectSize suppresses A12 effect size computation.
	NoEffectSize bool
	// AllowMissingRuns skips groups with fewer runs than expected instead
	// of failing.
	AllowMissingRuns bool
	// MinSamples is the smallest group size admitted to any comparison.
	MinSamples int
}

func (o Options) minSamples() int {
	if o.MinSamples > 1 {
		return o.MinSamples
	}
	return 2
}

// Analyzer runs analysis pipelines against a statistics comparer.
type Analyzer struct {
	Comparer rstats.Comparer
	Opts     Options
	Logger   *slog.Logger
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// primaryMeasure returns the location measure used to rank fuzzers and the
// secondary measure used to break ties.
func (a *Analyzer) primaryMeasure() (func(dataset.Group) float64, func(dataset.Group) float64, string) {
	if a.Opts.UseMean {
		return dataset.Group.Mean, dataset.Group.Median, "mean"
	}
	return dataset.Group.Median, dataset.Group.Mean, "median"
}

// BestCompetitorGroup picks the strongest fuzzer other than primary: highest
// primary measure, ties broken by the secondary measure.
func (a *Analyzer) BestCompetitorGroup(t dataset.Target, primary string) (dataset.Group, error) {
	fmp, fms, _ := a.primaryMeasure()
	var best dataset.Group
	found := false
	for _, g := range t.Groups {
		if g.Fuzzer == primary || len(g.Values) == 0 {
			continue
		}
		if !found || fmp(g) > fmp(best) || (fmp(g) == fmp(best) && fms(g) > fms(best)) {
			best = g
			found = true
		}
	}
	if !found {
		return dataset.Group{}, &dataset.ValidationError{Target: t.Name, Reason: fmt.Sprintf("no competitor for %s", primary)}
	}
	return best, nil
}

// TwoWay runs a bootstrap two-sample comparison of the tweak group against
// one competitor group, writing the verbose comparison report to w. It
// returns whether the difference was significant.
func (a *Analyzer) TwoWay(ctx context.Context, target string, tweak, other dataset.Group, w io.Writer) (bool, error) {
	minSamples := a.Opts.minSamples()
	for _, g := range []dataset.Group{tweak, other} {
		if len(g.Values) < minSamples {
			return false, &dataset.ValidationError{
				Target: target,
				Fuzzer: g.Fuzzer,
				Reason: fmt.Sprintf("have %d sample(s), need at least %d", len(g.Values), minSamples),
			}
		}
	}

	fmt.Fprintf(w, "[i] Two sample comparison: %s vs %s\n", tweak.Fuzzer, other.Fuzzer)
	fmt.Fprintf(w, "[d] %-16s -> %v\n", tweak.Fuzzer, sortedValues(tweak))
	fmt.Fprintf(w, "[d] %-16s -> %v\n", other.Fuzzer, sortedValues(other))

	res, err := a.Comparer.TwoSample(ctx, tweak.Values, other.Values)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(w, "[i] test_statistics=%v critical_value=%v significant? %t\n",
		res.Statistic, res.CriticalValue, res.Significant)

	if !a.Opts.NoEffectSize {
		if len(tweak.Values) != len(other.Values) {
			fmt.Fprintf(w, "[!] skipping effect size: %d vs %d runs\n", len(tweak.Values), len(other.Values))
			return res.Significant, nil
		}
		es, err := effect.A12(other.Values, tweak.Values)
		if err != nil {
			return false, err
		}
		field, err := effect.TableField(es)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(w, "[i] Effect size: %s\n", field)
	}
	return res.Significant, nil
}

// BestCompetitor runs the two-way comparison of the tweak against its best
// competitor for every target of the dataset.
func (a *Analyzer) BestCompetitor(ctx context.Context, ds dataset.Dataset, w io.Writer) error {
	return a.eachTarget(ds, w, func(t dataset.Target) error {
		_, _, err := a.bestCompetitorTest(ctx, t, w)
		return err
	})
}

func (a *Analyzer) bestCompetitorTest(ctx context.Context, t dataset.Target, w io.Writer) (dataset.Group, bool, error) {
	tweak, ok := t.Group(a.Opts.Tweak)
	if !ok {
		return dataset.Group{}, false, &dataset.ValidationError{Target: t.Name, Reason: fmt.Sprintf("tweak %s has no data", a.Opts.Tweak)}
	}
	best, err := a.BestCompetitorGroup(t, a.Opts.Tweak)
	if err != nil {
		return dataset.Group{}, false, err
	}
	_, _, measure := a.primaryMeasure()
	fmt.Fprintf(w, "[i] Best competitor: %s (%s)\n", best.Fuzzer, measure)
	sig, err := a.TwoWay(ctx, t.Name, tweak, best, w)
	if err != nil {
		return dataset.Group{}, false, err
	}
	return best, sig, nil
}

// Baseline runs the two-way comparison of the tweak against the fixed
// baseline for every target.
func (a *Analyzer) Baseline(ctx context.Context, ds dataset.Dataset, w io.Writer) error {
	return a.eachTarget(ds, w, func(t dataset.Target) error {
		tweak, ok := t.Group(a.Opts.Tweak)
		if !ok {
			fmt.Fprintf(w, "[!] %s: tweak %s has no data\n", t.Name, a.Opts.Tweak)
			return nil
		}
		base, ok := t.Group(a.Opts.Baseline)
		if !ok {
			fmt.Fprintf(w, "[!] %s: baseline %s has no data\n", t.Name, a.Opts.Baseline)
			return nil
		}
		_, err := a.TwoWay(ctx, t.Name, tweak, base, w)
		return err
	})
}

// eachTarget applies fn to every target that has data for more than one
// fuzzer, writing the shared per-target preamble and run-count warnings.
func (a *Analyzer) eachTarget(ds dataset.Dataset, w io.Writer, fn func(dataset.Target) error) error {
	for _, t := range ds.Targets {
		if len(t.Groups) < 2 {
			fmt.Fprintf(w, "[!] %s: skipping target, only %d fuzzer(s) have data\n", t.Name, len(t.Groups))
			continue
		}
		fmt.Fprintf(w, "# %s\n", t.Name)
		for _, g := range t.Groups {
			if a.Opts.ExpectedRuns > 0 && len(g.Values) != a.Opts.ExpectedRuns {
				fmt.Fprintf(w, "[!] %s: %s has %d run(s), expected %d\n", t.Name, g.Fuzzer, len(g.Values), a.Opts.ExpectedRuns)
			}
		}
		if err := fn(t); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func sortedValues(g dataset.Group) []float64 {
	out := append([]float64(nil), g.Values...)
	sort.Float64s(out)
	return out
}
