package extract

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// AFLStats extracts the final edge count from an AFL++ fuzzer_stats file,
// a flat "key : value" listing written at the end of a campaign.
type AFLStats struct {
	// Key selects the stats field to read. Empty means edges_found.
	Key string
}

func (e AFLStats) Extract(r io.Reader) (float64, error) {
	key := e.Key
	if key == "" {
		key = "edges_found"
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		name, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) != key {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, &ParseError{Format: "afl-stats", Reason: fmt.Sprintf("field %s is not numeric: %q", key, strings.TrimSpace(value))}
		}
		return v, nil
	}
	if err := sc.Err(); err != nil {
		return 0, &ParseError{Format: "afl-stats", Reason: err.Error()}
	}
	return 0, &ParseError{Format: "afl-stats", Reason: fmt.Sprintf("field %s not found", key)}
}

// AFLPlotData extracts the final edges_found value from an AFL++ plot_data
// trace. The file starts with a "# relative_time, ..." header naming the
// columns; the last data row holds the campaign's final state.
type AFLPlotData struct {
	// Column selects the column to read. Empty means edges_found.
	Column string
}

func (e AFLPlotData) Extract(r io.Reader) (float64, error) {
	column := e.Column
	if column == "" {
		column = "edges_found"
	}

	colIdx := -1
	var lastRow []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			header := strings.Split(strings.TrimSpace(strings.TrimPrefix(line, "#")), ",")
			for i, name := range header {
				if strings.TrimSpace(name) == column {
					colIdx = i
					break
				}
			}
			continue
		}
		lastRow = strings.Split(line, ",")
	}
	if err := sc.Err(); err != nil {
		return 0, &ParseError{Format: "afl-plot", Reason: err.Error()}
	}
	if colIdx < 0 {
		return 0, &ParseError{Format: "afl-plot", Reason: fmt.Sprintf("column %s not found in header", column)}
	}
	if lastRow == nil {
		return 0, &ParseError{Format: "afl-plot", Reason: "no data rows"}
	}
	if colIdx >= len(lastRow) {
		return 0, &ParseError{Format: "afl-plot", Reason: fmt.Sprintf("last row has %d columns, %s is column %d", len(lastRow), column, colIdx+1)}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(lastRow[colIdx]), 64)
	if err != nil {
		return 0, &ParseError{Format: "afl-plot", Reason: fmt.Sprintf("column %s is not numeric: %q", column, strings.TrimSpace(lastRow[colIdx]))}
	}
	return v, nil
}
