package dataset

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// CampaignResult is the final coverage of one fuzzer run against one target.
type CampaignResult struct {
	RunID    string
	Fuzzer   string
	Target   string
	Coverage float64
	Runtime  string
	Source   string
}

// Group holds the per-run coverage values of one fuzzer on one target, in
// the order the runs were recorded.
type Group struct {
	Fuzzer string
	Values []float64
}

// Target holds all fuzzer groups measured against one evaluation target.
type Target struct {
	Name   string
	Groups []Group
}

// Dataset is an ordered collection of targets. Order is significant: reports
// must come out in the same order the data went in.
type Dataset struct {
	Targets []Target
}

// ValidationError reports data that cannot enter a statistical comparison.
type ValidationError struct {
	Target string
	Fuzzer string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Target != "" && e.Fuzzer != "":
		return fmt.Sprintf("invalid samples for %s/%s: %s", e.Target, e.Fuzzer, e.Reason)
	case e.Target != "":
		return fmt.Sprintf("invalid samples for target %s: %s", e.Target, e.Reason)
	default:
		return fmt.Sprintf("invalid samples: %s", e.Reason)
	}
}

// Median returns the group's median coverage.
func (g Group) Median() float64 {
	samp := stats.Sample{Xs: append([]float64(nil), g.Values...)}
	samp.Sort()
	return samp.Quantile(0.5)
}

// Mean returns the group's mean coverage.
func (g Group) Mean() float64 {
	return stats.Sample{Xs: g.Values}.Mean()
}

// DistinctValues reports how many distinct coverage values the group holds.
func (g Group) DistinctValues() int {
	seen := make(map[float64]struct{}, len(g.Values))
	for _, v := range g.Values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Group returns the named fuzzer group, if present.
func (t Target) Group(fuzzer string) (Group, bool) {
	for _, g := range t.Groups {
		if g.Fuzzer == fuzzer {
			return g, true
		}
	}
	return Group{}, false
}

// Fuzzers lists the target's fuzzer names in group order.
func (t Target) Fuzzers() []string {
	names := make([]string, 0, len(t.Groups))
	for _, g := range t.Groups {
		names = append(names, g.Fuzzer)
	}
	return names
}

// Validate checks that every group of the target carries enough samples to
// be compared.
func (t Target) Validate(minSamples int) error {
	for _, g := range t.Groups {
		if len(g.Values) < minSamples {
			return &ValidationError{
				Target: t.Name,
				Fuzzer: g.Fuzzer,
				Reason: fmt.Sprintf("have %d sample(s), need at least %d", len(g.Values), minSamples),
			}
		}
	}
	return nil
}
