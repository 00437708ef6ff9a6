package analysis

import (
	"context"
	"fmt"
	"io"

	"github.com/benedict2310/fuzzstats/internal/rstats"
	"github.com/benedict2310/fuzzstats/pkg/dataset"
)

// FullComparison runs the omnibus bootstrap ANOVA with posthoc pairwise
// tests over all fuzzers of each target.
func (a *Analyzer) FullComparison(ctx context.Context, ds dataset.Dataset, w io.Writer) error {
	return a.eachTarget(ds, w, func(t dataset.Target) error {
		return a.fullComparisonTarget(ctx, t, w)
	})
}

func (a *Analyzer) fullComparisonTarget(ctx context.Context, t dataset.Target, w io.Writer) error {
	if len(t.Groups) == 2 {
		tweak, ok := t.Group(a.Opts.Tweak)
		if !ok {
			tweak = t.Groups[0]
		}
		other := t.Groups[0]
		if other.Fuzzer == tweak.Fuzzer {
			other = t.Groups[1]
		}
		_, err := a.TwoWay(ctx, t.Name, tweak, other, w)
		return err
	}

	// Omnibus path: drop groups the test cannot handle, then require at
	// least two survivors.
	var fuzzers []string
	var groups [][]float64
	for _, g := range t.Groups {
		fmt.Fprintf(w, "[d] %-16s -> %v\n", g.Fuzzer, g.Values)
		if a.Opts.ExpectedRuns > 0 && len(g.Values) != a.Opts.ExpectedRuns {
			if !a.Opts.AllowMissingRuns {
				return &dataset.ValidationError{
					Target: t.Name,
					Fuzzer: g.Fuzzer,
					Reason: fmt.Sprintf("have %d run(s), expected %d", len(g.Values), a.Opts.ExpectedRuns),
				}
			}
			fmt.Fprintf(w, "[!] %s: expected %d runs, found %d; skipping\n", g.Fuzzer, a.Opts.ExpectedRuns, len(g.Values))
			continue
		}
		if g.DistinctValues() < 3 {
			fmt.Fprintf(w, "[!] %s: data is essentially constant, skipping this fuzzer\n", g.Fuzzer)
			continue
		}
		fuzzers = append(fuzzers, g.Fuzzer)
		groups = append(groups, g.Values)
	}
	if len(groups) < 2 {
		fmt.Fprintf(w, "[!] %s: not enough groups to run a test, skipping this target\n", t.Name)
		return nil
	}

	res, err := a.Comparer.Anova(ctx, groups)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Posthoc results")
	if err := writePosthoc(w, res.Posthoc, fuzzers); err != nil {
		return err
	}
	fmt.Fprintln(w, "Posthoc MEAN results")
	if err := writePosthoc(w, res.PosthocMean, fuzzers); err != nil {
		return err
	}
	fmt.Fprintf(w, "[i] anova significant? %t (statistics: %v, critical values: %v)\n",
		res.Significant, res.Statistic, res.CritVals)
	return nil
}

func writePosthoc(w io.Writer, rows []rstats.PosthocRow, fuzzers []string) error {
	for _, row := range rows {
		if row.Sample1 >= len(fuzzers) || row.Sample2 >= len(fuzzers) {
			return fmt.Errorf("posthoc sample index out of range: %d vs %d with %d groups", row.Sample1, row.Sample2, len(fuzzers))
		}
		_, err := fmt.Fprintf(w, "%-16s vs %-16s: %-5t (statistics: %.2f)\n",
			fuzzers[row.Sample1], fuzzers[row.Sample2], row.Significant, row.Statistic)
		if err != nil {
			return err
		}
	}
	return nil
}
