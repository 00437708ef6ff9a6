// Package rstats invokes the external bootstrap-based statistics routines.
// The actual resampling tests live in a user-supplied R script exposing
// dec_twosamplecomparison and dec_anova; this package only marshals samples
// in, runs Rscript, and decodes the decision vectors coming back.
package rstats

import (
	"context"
	"fmt"
)

// TwoSampleResult is the outcome of a bootstrap two-sample comparison.
type TwoSampleResult struct {
	Statistic     float64
	CriticalValue float64
	Significant   bool
}

// PosthocRow is one pairwise decision of the posthoc stage of an omnibus
// test. Sample1 and Sample2 are zero-based group indices.
type PosthocRow struct {
	Sample1     int
	Sample2     int
	Significant bool
	Statistic   float64
}

// AnovaResult is the outcome of the bootstrap ANOVA with posthoc pairwise
// comparisons on medians and means.
type AnovaResult struct {
	Significant bool
	Statistic   float64
	// CritVals holds the critical values of the ANOVA, the posthoc stage
	// and the posthoc-on-means stage, in that order.
	CritVals    [3]float64
	Posthoc     []PosthocRow
	PosthocMean []PosthocRow
}

// Comparer runs the external statistical comparisons. The production
// implementation shells out to Rscript; tests substitute a fake.
type Comparer interface {
	TwoSample(ctx context.Context, a, b []float64) (TwoSampleResult, error)
	Anova(ctx context.Context, groups [][]float64) (AnovaResult, error)
}

// ExternalToolError reports that the external statistics routine was
// unavailable or returned output this package cannot decode.
type ExternalToolError struct {
	Op  string
	Err error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("external statistics routine: %s: %v", e.Op, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }
