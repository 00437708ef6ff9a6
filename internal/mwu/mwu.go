// Package mwu runs traditional two-sided Mann-Whitney U tests as an
// alternative to the bootstrap-based comparison.
package mwu

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Result is the outcome of one two-sided Mann-Whitney U test.
type Result struct {
	U float64
	P float64
}

// Test compares a baseline group against a tweak group. Ties between and
// within the groups make the exact test unreliable; callers should surface
// the warnings from ValidateDatasets alongside the result.
func Test(baseline, tweak []float64) (Result, error) {
	res, err := stats.MannWhitneyUTest(baseline, tweak, stats.LocationDiffers)
	if err != nil {
		return Result{}, fmt.Errorf("mann-whitney u test: %w", err)
	}
	return Result{U: res.U, P: res.P}, nil
}

// NumTies counts how many values of the data occur more than once.
func NumTies(data []float64) int {
	seen := make(map[float64]struct{}, len(data))
	for _, v := range data {
		seen[v] = struct{}{}
	}
	return len(data) - len(seen)
}

// ContainsZero reports whether the data contains a zero coverage value,
// which usually indicates a broken run.
func ContainsZero(data []float64) bool {
	for _, v := range data {
		if v == 0 {
			return true
		}
	}
	return false
}

// ValidateDatasets returns human-readable warnings about ties within and
// across the two groups.
func ValidateDatasets(a, b []float64, labelA, labelB string) []string {
	var warnings []string
	if n := NumTies(a); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%s contains %d ties: %v", labelA, n, sortedCopy(a)))
	}
	if n := NumTies(b); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%s contains %d ties: %v", labelB, n, sortedCopy(b)))
	}
	combined := append(append([]float64(nil), a...), b...)
	if n := NumTies(combined); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%s+%s contains %d ties: %v", labelA, labelB, n, sortedCopy(combined)))
	}
	return warnings
}

func sortedCopy(data []float64) []float64 {
	out := append([]float64(nil), data...)
	sort.Float64s(out)
	return out
}
