package extract

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// CSV extracts the final coverage value from a generic coverage trace: one
// row per measurement, last row wins. The value is read from the last field
// of the row, so both single-column files and "time,coverage" traces work.
type CSV struct{}

func (CSV) Extract(r io.Reader) (float64, error) {
	var last string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		last = strings.TrimSpace(fields[len(fields)-1])
	}
	if err := sc.Err(); err != nil {
		return 0, &ParseError{Format: "csv", Reason: err.Error()}
	}
	if last == "" {
		return 0, &ParseError{Format: "csv", Reason: "no data rows"}
	}
	v, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return 0, &ParseError{Format: "csv", Reason: "final value is not numeric: " + strconv.Quote(last)}
	}
	return v, nil
}
