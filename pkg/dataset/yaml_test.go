package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleDataYAML = `Example 1:
  aflpp: [1000, 1001, 1002, 1003, 1004, 1005, 1006, 1007, 1008, 1009]
  new_fuzzer: [1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111, 1111]
Example 2:
  aflpp: [1000, 1001, 1002, 1003, 1004, 1005, 1006, 1007, 1008, 1009]
  new_fuzzer: [999, 999, 999, 999, 999, 999, 999, 999, 999, 999]
`

func TestParsePreservesDocumentOrder(t *testing.T) {
	ds, err := Parse([]byte(sampleDataYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(ds.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(ds.Targets))
	}
	if ds.Targets[0].Name != "Example 1" || ds.Targets[1].Name != "Example 2" {
		t.Fatalf("targets out of order: %q, %q", ds.Targets[0].Name, ds.Targets[1].Name)
	}
	if got := ds.Targets[0].Fuzzers(); got[0] != "aflpp" || got[1] != "new_fuzzer" {
		t.Fatalf("fuzzers out of order: %v", got)
	}

	aflpp, ok := ds.Targets[0].Group("aflpp")
	if !ok || len(aflpp.Values) != 10 {
		t.Fatalf("aflpp group = %+v", aflpp)
	}
	if aflpp.Values[0] != 1000 || aflpp.Values[9] != 1009 {
		t.Fatalf("aflpp values out of order: %v", aflpp.Values)
	}
}

func TestParseRejectsNonNumericRuns(t *testing.T) {
	_, err := Parse([]byte("libpng:\n  aflpp: [1000, not-a-number]\n"))
	if err == nil {
		t.Fatalf("expected error for non-numeric run value")
	}
	if !strings.Contains(err.Error(), "aflpp") {
		t.Fatalf("error should name the fuzzer: %v", err)
	}
}

func TestParseRejectsScalarDocument(t *testing.T) {
	if _, err := Parse([]byte("just a string")); err == nil {
		t.Fatalf("expected error for non-mapping document")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestMarshalRoundTripKeepsOrder(t *testing.T) {
	ds, err := Parse([]byte(sampleDataYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	data, err := yaml.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(marshaled) error = %v", err)
	}
	if len(back.Targets) != 2 || back.Targets[0].Name != "Example 1" {
		t.Fatalf("round trip lost order: %+v", back.Targets)
	}
	g, _ := back.Targets[1].Group("new_fuzzer")
	if len(g.Values) != 10 || g.Values[0] != 999 {
		t.Fatalf("round trip lost values: %v", g.Values)
	}
}

func TestLoadFileReadsDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(path, []byte(sampleDataYAML), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(ds.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(ds.Targets))
	}
}
