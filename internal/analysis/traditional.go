package analysis

import (
	"fmt"
	"io"

	"github.com/benedict2310/fuzzstats/internal/mwu"
	"github.com/benedict2310/fuzzstats/pkg/dataset"
	"github.com/benedict2310/fuzzstats/pkg/effect"
)

// Traditional runs Mann-Whitney U tests instead of the bootstrap-based
// comparison: pairwise across all fuzzers of a target, or only the tweak
// against its best competitor when onlyBestCompetitor is set.
func (a *Analyzer) Traditional(ds dataset.Dataset, onlyBestCompetitor bool, w io.Writer) error {
	return a.eachTarget(ds, w, func(t dataset.Target) error {
		if onlyBestCompetitor {
			return a.traditionalBestCompetitor(t, w)
		}
		return a.traditionalPairwise(t, w)
	})
}

func (a *Analyzer) traditionalBestCompetitor(t dataset.Target, w io.Writer) error {
	tweak, ok := t.Group(a.Opts.Tweak)
	if !ok {
		return &dataset.ValidationError{Target: t.Name, Reason: fmt.Sprintf("tweak %s has no data", a.Opts.Tweak)}
	}
	best, err := a.BestCompetitorGroup(t, a.Opts.Tweak)
	if err != nil {
		return err
	}
	return a.traditionalCompare(t.Name, tweak, best, w)
}

func (a *Analyzer) traditionalPairwise(t dataset.Target, w io.Writer) error {
	for _, tweak := range t.Groups {
		for _, base := range t.Groups {
			if tweak.Fuzzer == base.Fuzzer {
				continue
			}
			if err := a.traditionalCompare(t.Name, tweak, base, w); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Analyzer) traditionalCompare(target string, tweak, base dataset.Group, w io.Writer) error {
	minSamples := a.Opts.minSamples()
	for _, g := range []dataset.Group{tweak, base} {
		if len(g.Values) < minSamples {
			return &dataset.ValidationError{
				Target: target,
				Fuzzer: g.Fuzzer,
				Reason: fmt.Sprintf("have %d sample(s), need at least %d", len(g.Values), minSamples),
			}
		}
	}

	for _, warning := range mwu.ValidateDatasets(base.Values, tweak.Values, base.Fuzzer, tweak.Fuzzer) {
		a.logger().Warn("mann-whitney u data", "target", target, "issue", warning)
	}

	res, err := mwu.Test(base.Values, tweak.Values)
	if err != nil {
		return fmt.Errorf("%s: %s vs %s: %w", target, tweak.Fuzzer, base.Fuzzer, err)
	}

	line := fmt.Sprintf("%-16s (tweak) vs %-16s (baseline): p_val=%.4f (< 0.05? %-5t)",
		tweak.Fuzzer, base.Fuzzer, res.P, res.P < 0.05)
	if !a.Opts.NoEffectSize && len(tweak.Values) == len(base.Values) {
		es, err := effect.A12(base.Values, tweak.Values)
		if err != nil {
			return err
		}
		field, err := effect.TableField(es)
		if err != nil {
			return err
		}
		line += ", " + field
	}
	fmt.Fprintln(w, line)
	return nil
}
