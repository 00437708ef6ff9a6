package extract

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// LibFuzzerLog extracts the last reported "cov:" counter from a libFuzzer
// campaign log.
type LibFuzzerLog struct{}

func (LibFuzzerLog) Extract(r io.Reader) (float64, error) {
	last := ""
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		for i, f := range fields {
			if f == "cov:" && i+1 < len(fields) {
				last = fields[i+1]
			}
		}
	}
	if err := sc.Err(); err != nil {
		return 0, &ParseError{Format: "libfuzzer", Reason: err.Error()}
	}
	if last == "" {
		return 0, &ParseError{Format: "libfuzzer", Reason: "no cov: counter found"}
	}
	v, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return 0, &ParseError{Format: "libfuzzer", Reason: "cov: counter is not numeric: " + strconv.Quote(last)}
	}
	return v, nil
}
