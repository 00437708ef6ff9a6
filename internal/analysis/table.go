package analysis

import (
	"context"
	"fmt"
	"io"

	"github.com/benedict2310/fuzzstats/internal/report"
	"github.com/benedict2310/fuzzstats/pkg/dataset"
	"github.com/benedict2310/fuzzstats/pkg/effect"
)

// GenTable builds one paper-table row per target: the tweak is tested
// against its best competitor and annotated with the A12 effect size.
// Targets that cannot be compared are skipped with a diagnostic on diag;
// row order follows dataset order.
func (a *Analyzer) GenTable(ctx context.Context, ds dataset.Dataset, diag io.Writer) ([]report.TableRow, error) {
	var rows []report.TableRow
	for _, t := range ds.Targets {
		fmt.Fprintf(diag, "[i] target=%s\n", t.Name)
		tweak, ok := t.Group(a.Opts.Tweak)
		if !ok {
			fmt.Fprintf(diag, "[!] %s: tweak %s has no data\n", t.Name, a.Opts.Tweak)
			continue
		}
		if len(t.Groups) < 2 {
			fmt.Fprintf(diag, "[!] %s: data for less than 2 fuzzers (%v)\n", t.Name, t.Fuzzers())
			continue
		}

		best, sig, err := a.bestCompetitorTest(ctx, t, diag)
		if err != nil {
			return nil, err
		}
		if len(best.Values) != len(tweak.Values) {
			fmt.Fprintf(diag, "[!] %s: num_runs[%s]=%d <-> num_runs[%s]=%d\n",
				t.Name, best.Fuzzer, len(best.Values), tweak.Fuzzer, len(tweak.Values))
			continue
		}

		es, err := effect.A12(best.Values, tweak.Values)
		if err != nil {
			return nil, err
		}
		field, err := effect.TableField(es)
		if err != nil {
			return nil, err
		}
		rows = append(rows, report.TableRow{
			Target:      t.Name,
			Competitor:  best.Fuzzer,
			EffectField: field,
			Significant: sig,
		})
	}
	return rows, nil
}
