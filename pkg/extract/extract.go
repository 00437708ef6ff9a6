// Package extract turns raw fuzzer campaign artifacts into final coverage
// values. Parsing is pluggable: the pipeline only depends on the Extractor
// interface, and integrators can register their own formats next to the
// built-in AFL, libFuzzer and CSV ones.
package extract

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Extractor reads one raw campaign artifact and produces its final coverage
// value.
type Extractor interface {
	Extract(r io.Reader) (float64, error)
}

// ParseError reports an artifact whose coverage field could not be located
// or was non-numeric.
type ParseError struct {
	Format string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s artifact: %s", e.Format, e.Reason)
}

var registry = map[string]func() Extractor{
	"afl-stats": func() Extractor { return AFLStats{} },
	"afl-plot":  func() Extractor { return AFLPlotData{} },
	"libfuzzer": func() Extractor { return LibFuzzerLog{} },
	"csv":       func() Extractor { return CSV{} },
}

// Register adds a named extractor format. Registering an existing name
// replaces the previous constructor.
func Register(name string, fn func() Extractor) {
	registry[name] = fn
}

// New returns the extractor registered under the given format name.
func New(format string) (Extractor, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unknown artifact format %q (expected one of %s)", format, strings.Join(Formats(), ", "))
	}
	return fn(), nil
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
