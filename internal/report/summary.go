package report

import (
	"fmt"
	"io"

	"github.com/aclements/go-moremath/stats"
)

// WriteImprovementSummary writes the cross-target summary of improvement
// values: the raw series followed by average, median, worst and best. The
// unit suffix ("%" for percentages, "" for factors) is appended to each
// aggregate.
func WriteImprovementSummary(w io.Writer, label string, values []float64, unit string) error {
	if len(values) == 0 {
		return nil
	}
	samp := stats.Sample{Xs: append([]float64(nil), values...)}
	samp.Sort()
	if _, err := fmt.Fprintf(w, "[i] Raw %s: %v\n", label, values); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "[i] Average improvement: %v%s (median: %v%s)\n",
		samp.Mean(), unit, samp.Quantile(0.5), unit); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "[i] Worst improvement: %v%s\n", samp.Xs[0], unit); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "[i] Best improvement: %v%s\n", samp.Xs[len(samp.Xs)-1], unit); err != nil {
		return err
	}
	return nil
}
