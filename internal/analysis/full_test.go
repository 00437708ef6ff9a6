package analysis

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/benedict2310/fuzzstats/internal/rstats"
	"github.com/benedict2310/fuzzstats/pkg/dataset"
)

func TestFullComparisonRunsAnova(t *testing.T) {
	cmp := &fakeComparer{anova: rstats.AnovaResult{
		Significant: true,
		Statistic:   9.9,
		CritVals:    [3]float64{1, 2, 3},
		Posthoc: []rstats.PosthocRow{
			{Sample1: 0, Sample2: 1, Significant: true, Statistic: 4.2},
		},
		PosthocMean: []rstats.PosthocRow{
			{Sample1: 0, Sample2: 2, Significant: false, Statistic: 0.1},
		},
	}}
	a := newTestAnalyzer(cmp)

	var buf bytes.Buffer
	if err := a.FullComparison(context.Background(), exampleDataset(), &buf); err != nil {
		t.Fatalf("FullComparison() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Posthoc results",
		"Posthoc MEAN results",
		"vs new_fuzzer",
		"anova significant? true",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// Example 1 has three fuzzers (anova); Example 2 only two (two-way).
	if len(cmp.anovaCalls) != 1 {
		t.Fatalf("expected 1 anova call, got %d", len(cmp.anovaCalls))
	}
	if len(cmp.twoSampleCalls) != 1 {
		t.Fatalf("expected 1 two-way call, got %d", len(cmp.twoSampleCalls))
	}
}

func TestFullComparisonSkipsConstantGroups(t *testing.T) {
	cmp := &fakeComparer{}
	a := newTestAnalyzer(cmp)
	a.Opts.ExpectedRuns = 3
	ds := dataset.Dataset{Targets: []dataset.Target{
		{Name: "t", Groups: []dataset.Group{
			{Fuzzer: "a", Values: []float64{1, 2, 3}},
			{Fuzzer: "constant", Values: []float64{7, 7, 7}},
			{Fuzzer: "c", Values: []float64{4, 5, 6}},
		}},
	}}

	var buf bytes.Buffer
	if err := a.FullComparison(context.Background(), ds, &buf); err != nil {
		t.Fatalf("FullComparison() error = %v", err)
	}
	if !strings.Contains(buf.String(), "essentially constant") {
		t.Fatalf("expected constant-group warning:\n%s", buf.String())
	}
	if len(cmp.anovaCalls) != 1 || len(cmp.anovaCalls[0]) != 2 {
		t.Fatalf("expected anova over 2 surviving groups, got %+v", cmp.anovaCalls)
	}
}

func TestFullComparisonMissingRunsFailWithoutAllowFlag(t *testing.T) {
	cmp := &fakeComparer{}
	a := newTestAnalyzer(cmp)
	a.Opts.ExpectedRuns = 3
	ds := dataset.Dataset{Targets: []dataset.Target{
		{Name: "t", Groups: []dataset.Group{
			{Fuzzer: "a", Values: []float64{1, 2, 3}},
			{Fuzzer: "b", Values: []float64{4, 5}},
			{Fuzzer: "c", Values: []float64{6, 7, 8}},
		}},
	}}

	var buf bytes.Buffer
	err := a.FullComparison(context.Background(), ds, &buf)
	var verr *dataset.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFullComparisonMissingRunsSkippedWithAllowFlag(t *testing.T) {
	cmp := &fakeComparer{}
	a := newTestAnalyzer(cmp)
	a.Opts.ExpectedRuns = 3
	a.Opts.AllowMissingRuns = true
	ds := dataset.Dataset{Targets: []dataset.Target{
		{Name: "t", Groups: []dataset.Group{
			{Fuzzer: "a", Values: []float64{1, 2, 3}},
			{Fuzzer: "b", Values: []float64{4, 5}},
			{Fuzzer: "c", Values: []float64{6, 7, 8}},
		}},
	}}

	var buf bytes.Buffer
	if err := a.FullComparison(context.Background(), ds, &buf); err != nil {
		t.Fatalf("FullComparison() error = %v", err)
	}
	if len(cmp.anovaCalls) != 1 || len(cmp.anovaCalls[0]) != 2 {
		t.Fatalf("expected anova over 2 groups, got %+v", cmp.anovaCalls)
	}
}

func TestFullComparisonNotEnoughGroups(t *testing.T) {
	cmp := &fakeComparer{}
	a := newTestAnalyzer(cmp)
	a.Opts.ExpectedRuns = 3
	ds := dataset.Dataset{Targets: []dataset.Target{
		{Name: "t", Groups: []dataset.Group{
			{Fuzzer: "a", Values: []float64{1, 2, 3}},
			{Fuzzer: "constant", Values: []float64{7, 7, 7}},
			{Fuzzer: "also-constant", Values: []float64{9, 9, 9}},
		}},
	}}

	var buf bytes.Buffer
	if err := a.FullComparison(context.Background(), ds, &buf); err != nil {
		t.Fatalf("FullComparison() error = %v", err)
	}
	if len(cmp.anovaCalls) != 0 {
		t.Fatalf("expected no anova call, got %d", len(cmp.anovaCalls))
	}
	if !strings.Contains(buf.String(), "not enough groups") {
		t.Fatalf("expected skip message:\n%s", buf.String())
	}
}
