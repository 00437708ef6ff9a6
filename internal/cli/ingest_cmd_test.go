package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testFuzzerStats = `start_time        : 1700000000
last_update       : 1700086400
run_time          : 86400
fuzzer_pid        : 12345
execs_done        : 48230112
edges_found       : 2960
total_edges       : 65536
`

func writeArtifact(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestIngestCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t)
	dbPath := filepath.Join(dir, "runs.db")
	a1 := writeArtifact(t, dir, "fuzzer_stats_1", testFuzzerStats)
	a2 := writeArtifact(t, dir, "fuzzer_stats_2", strings.Replace(testFuzzerStats, "2960", "3105", 1))

	out, _, err := execRoot(t, "ingest", "--config", cfg,
		"--db", dbPath, "--fuzzer", "aflpp", "--target", "libpng",
		"--runtime", "86400s", a1, a2)
	if err != nil {
		t.Fatalf("ingest error = %v", err)
	}
	if !strings.Contains(out, "Ingested 2 run(s) for libpng/aflpp into "+dbPath) {
		t.Fatalf("unexpected ingest output:\n%s", out)
	}

	listOut, _, err := execRoot(t, "runs", "list", "--db", dbPath)
	if err != nil {
		t.Fatalf("runs list error = %v", err)
	}
	for _, want := range []string{"ID", "TARGET", "FUZZER", "libpng", "aflpp", "2960", "3105", "86400s"} {
		if !strings.Contains(listOut, want) {
			t.Fatalf("runs list output missing %q:\n%s", want, listOut)
		}
	}
}

func TestIngestCommandMissingRequiredFlags(t *testing.T) {
	cfg := writeTestConfig(t)
	out, errOut, err := execRoot(t, "ingest", "--config", cfg, "somefile")
	if err == nil {
		t.Fatalf("expected error without --db/--fuzzer/--target")
	}
	if !strings.Contains(err.Error(), "required flag(s)") {
		t.Fatalf("expected required flag error, got %v", err)
	}
	if !strings.Contains(errOut, "Usage:") {
		t.Fatalf("expected usage on stderr:\n%s", errOut)
	}
	if strings.Contains(out, "Ingested") {
		t.Fatalf("expected no ingest confirmation, got:\n%s", out)
	}
}

func TestIngestCommandNoArtifacts(t *testing.T) {
	cfg := writeTestConfig(t)
	_, _, err := execRoot(t, "ingest", "--config", cfg, "--db", "x.db", "--fuzzer", "aflpp", "--target", "libpng")
	if err == nil {
		t.Fatalf("expected error without artifact arguments")
	}
}

func TestIngestCommandBatchIsAtomic(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t)
	dbPath := filepath.Join(dir, "runs.db")
	good := writeArtifact(t, dir, "fuzzer_stats_good", testFuzzerStats)
	bad := writeArtifact(t, dir, "fuzzer_stats_bad", "no coverage counters here\n")

	_, _, err := execRoot(t, "ingest", "--config", cfg,
		"--db", dbPath, "--fuzzer", "aflpp", "--target", "libpng", good, bad)
	if err == nil {
		t.Fatalf("expected ingest to fail on the malformed artifact")
	}

	// The earlier artifact of the failed batch must not have been persisted,
	// or re-running the batch would duplicate its run.
	listOut, _, err := execRoot(t, "runs", "list", "--db", dbPath)
	if err != nil {
		t.Fatalf("runs list error = %v", err)
	}
	if strings.Contains(listOut, "libpng") || strings.Contains(listOut, "2960") {
		t.Fatalf("expected no persisted runs after failed batch, got:\n%s", listOut)
	}
}

func TestIngestCommandParseErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	cfg := writeTestConfig(t)
	dbPath := filepath.Join(dir, "runs.db")
	bad := writeArtifact(t, dir, "fuzzer_stats", "no coverage counters here\n")

	_, _, err := execRoot(t, "ingest", "--config", cfg,
		"--db", dbPath, "--fuzzer", "aflpp", "--target", "libpng", bad)
	if err == nil {
		t.Fatalf("expected parse error for malformed artifact")
	}
	if got := ExitCode(err); got != 2 {
		t.Fatalf("ExitCode(parse failure) = %d, want 2", got)
	}
	if !strings.Contains(err.Error(), bad) {
		t.Fatalf("expected artifact path in error, got %v", err)
	}
}
