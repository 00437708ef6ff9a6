// Package report renders comparison results into textual report bodies.
// Rendering is pure formatting: rows come out in exactly the order they go
// in.
package report

import (
	"fmt"
	"io"
	"strings"
)

// TableRow is one rendered comparison of a paper table: the evaluation
// target, the best competitor it was tested against, and the effect-size
// field for that comparison.
type TableRow struct {
	Target      string
	Competitor  string
	EffectField string
	Significant bool
}

// WriteLatexTable writes a LaTeX table body, one row per comparison. The
// competitor name is emitted as a macro (\aflpp style) so papers can control
// fuzzer display names, and the effect field is bold when the comparison was
// statistically significant.
func WriteLatexTable(w io.Writer, rows []TableRow) error {
	for _, row := range rows {
		field := row.EffectField
		if row.Significant {
			field = `\textbf{` + field + `}`
		} else {
			field = strings.Repeat(" ", 8) + field + " "
		}
		_, err := fmt.Fprintf(w, "%-34s & \\%-10s & %-8s \\\\\n", EscapeLatex(row.Target), row.Competitor, field)
		if err != nil {
			return err
		}
	}
	return nil
}

var latexEscaper = strings.NewReplacer(
	`_`, `\_`,
	`%`, `\%`,
	`&`, `\&`,
	`#`, `\#`,
)

// EscapeLatex escapes the characters that commonly appear in fuzzing target
// names and would otherwise break the table.
func EscapeLatex(s string) string {
	return latexEscaper.Replace(s)
}
