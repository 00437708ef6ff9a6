package dataset

import (
	"errors"
	"testing"
)

func TestAggregateGroupsByFuzzerAndTarget(t *testing.T) {
	results := []CampaignResult{
		{Fuzzer: "AFL", Target: "libpng", Coverage: 120},
		{Fuzzer: "AFL", Target: "libpng", Coverage: 135},
		{Fuzzer: "Hongfuzz", Target: "libpng", Coverage: 110},
	}

	ds := Aggregate(results)
	if len(ds.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(ds.Targets))
	}
	libpng := ds.Targets[0]
	if libpng.Name != "libpng" {
		t.Fatalf("target = %q, want libpng", libpng.Name)
	}
	if got := libpng.Fuzzers(); len(got) != 2 || got[0] != "AFL" || got[1] != "Hongfuzz" {
		t.Fatalf("fuzzers = %v, want [AFL Hongfuzz]", got)
	}

	afl, ok := libpng.Group("AFL")
	if !ok {
		t.Fatalf("missing AFL group")
	}
	if len(afl.Values) != 2 || afl.Values[0] != 120 || afl.Values[1] != 135 {
		t.Fatalf("AFL values = %v, want [120 135]", afl.Values)
	}
}

func TestAggregatePreservesInsertionOrderWithinGroup(t *testing.T) {
	results := []CampaignResult{
		{Fuzzer: "a", Target: "t", Coverage: 3},
		{Fuzzer: "b", Target: "t", Coverage: 9},
		{Fuzzer: "a", Target: "t", Coverage: 1},
		{Fuzzer: "a", Target: "t", Coverage: 2},
	}

	ds := Aggregate(results)
	g, _ := ds.Targets[0].Group("a")
	want := []float64{3, 1, 2}
	for i, v := range want {
		if g.Values[i] != v {
			t.Fatalf("values = %v, want %v", g.Values, want)
		}
	}
}

func TestAggregateKeepsTargetFirstSeenOrder(t *testing.T) {
	results := []CampaignResult{
		{Fuzzer: "a", Target: "zlib", Coverage: 1},
		{Fuzzer: "a", Target: "libpng", Coverage: 2},
		{Fuzzer: "b", Target: "zlib", Coverage: 3},
	}

	ds := Aggregate(results)
	if len(ds.Targets) != 2 || ds.Targets[0].Name != "zlib" || ds.Targets[1].Name != "libpng" {
		t.Fatalf("targets out of order: %+v", ds.Targets)
	}
}

func TestValidateMinimumSampleCount(t *testing.T) {
	target := Target{
		Name: "libpng",
		Groups: []Group{
			{Fuzzer: "AFL", Values: []float64{120, 135}},
			{Fuzzer: "Hongfuzz", Values: []float64{110}},
		},
	}

	err := target.Validate(2)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fuzzer != "Hongfuzz" {
		t.Fatalf("ValidationError fuzzer = %q, want Hongfuzz", verr.Fuzzer)
	}

	target.Groups[1].Values = append(target.Groups[1].Values, 112)
	if err := target.Validate(2); err != nil {
		t.Fatalf("Validate() error = %v after adding sample", err)
	}
}

func TestGroupMedianAndMean(t *testing.T) {
	g := Group{Values: []float64{1000, 1001, 1002, 1003, 1004, 1005, 1006, 1007, 1008, 1009}}
	if got := g.Median(); got != 1004.5 {
		t.Fatalf("Median() = %v, want 1004.5", got)
	}
	if got := g.Mean(); got != 1004.5 {
		t.Fatalf("Mean() = %v, want 1004.5", got)
	}
	if got := g.DistinctValues(); got != 10 {
		t.Fatalf("DistinctValues() = %d, want 10", got)
	}

	constant := Group{Values: []float64{5, 5, 5}}
	if got := constant.DistinctValues(); got != 1 {
		t.Fatalf("DistinctValues() = %d, want 1", got)
	}
}

func TestFilterKeepsDatasetOrder(t *testing.T) {
	ds := Dataset{Targets: []Target{{Name: "a"}, {Name: "b"}, {Name: "c"}}}

	got := ds.Filter([]string{"c", "a"})
	if len(got.Targets) != 2 || got.Targets[0].Name != "a" || got.Targets[1].Name != "c" {
		t.Fatalf("filtered targets = %+v, want a then c", got.Targets)
	}

	all := ds.Filter(nil)
	if len(all.Targets) != 3 {
		t.Fatalf("empty filter should keep all targets, got %d", len(all.Targets))
	}
}
