package analysis

import (
	"fmt"
	"io"
	"math"

	"github.com/benedict2310/fuzzstats/internal/report"
	"github.com/benedict2310/fuzzstats/pkg/dataset"
)

// Improvement is the relative gain of the tweak over a reference fuzzer on
// one target.
type Improvement struct {
	Competitor string
	// Percent is the coverage gain in percent of the reference coverage.
	Percent float64
	// Factor is tweak coverage over reference coverage.
	Factor float64
}

// ImprovementOver computes the tweak's improvement on one target, against
// the named baseline or, when baseline is empty, the best competitor.
func (a *Analyzer) ImprovementOver(t dataset.Target, w io.Writer) (Improvement, error) {
	fmp, _, measure := a.primaryMeasure()

	tweak, ok := t.Group(a.Opts.Tweak)
	if !ok {
		return Improvement{}, &dataset.ValidationError{Target: t.Name, Reason: fmt.Sprintf("tweak %s has no data", a.Opts.Tweak)}
	}

	var ref dataset.Group
	if a.Opts.Baseline == "" {
		fmt.Fprintln(w, "[i] No baseline specified, using best competitor")
		best, err := a.BestCompetitorGroup(t, a.Opts.Tweak)
		if err != nil {
			return Improvement{}, err
		}
		ref = best
	} else {
		base, ok := t.Group(a.Opts.Baseline)
		if !ok {
			return Improvement{}, &dataset.ValidationError{Target: t.Name, Reason: fmt.Sprintf("baseline %s has no data", a.Opts.Baseline)}
		}
		ref = base
	}

	minSamples := a.Opts.minSamples()
	for _, g := range []dataset.Group{tweak, ref} {
		if len(g.Values) < minSamples {
			return Improvement{}, &dataset.ValidationError{
				Target: t.Name,
				Fuzzer: g.Fuzzer,
				Reason: fmt.Sprintf("have %d sample(s), need at least %d", len(g.Values), minSamples),
			}
		}
	}

	mRef := fmp(ref)
	mTweak := fmp(tweak)
	if mRef == 0 {
		return Improvement{}, &dataset.ValidationError{Target: t.Name, Fuzzer: ref.Fuzzer, Reason: "reference coverage is zero"}
	}
	diff := mTweak - mRef
	percent := math.Round(100*100*diff/mRef) / 100
	factor := mTweak / mRef

	fmt.Fprintf(w, "[i] %s %s=%v <-> %v (%s)\n", measure, a.Opts.Tweak, mTweak, mRef, ref.Fuzzer)
	fmt.Fprintf(w, "[i] Difference of %ss: %v %v%% more coverage (%.2f times better)\n", measure, diff, percent, factor)

	return Improvement{Competitor: ref.Fuzzer, Percent: percent, Factor: factor}, nil
}

// Improvement computes per-target improvements and the cross-target summary.
func (a *Analyzer) Improvement(ds dataset.Dataset, w io.Writer) error {
	var percents, factors []float64
	err := a.eachTarget(ds, w, func(t dataset.Target) error {
		imp, err := a.ImprovementOver(t, w)
		if err != nil {
			return err
		}
		percents = append(percents, imp.Percent)
		factors = append(factors, imp.Factor)
		return nil
	})
	if err != nil {
		return err
	}
	if err := report.WriteImprovementSummary(w, "factors", factors, ""); err != nil {
		return err
	}
	return report.WriteImprovementSummary(w, "percentages", percents, "%")
}
