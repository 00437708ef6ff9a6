package main

import "testing"

func TestRunVersion(t *testing.T) {
	if err := run([]string{"version"}); err != nil {
		t.Fatalf("run(version) error = %v", err)
	}
}

func TestRunGenTableMissingFlag(t *testing.T) {
	t.Setenv("FUZZSTATS_CONFIG", "")
	t.Setenv("HOME", t.TempDir())
	err := run([]string{"gen-table"})
	if err == nil {
		t.Fatalf("expected gen-table to fail without --data")
	}
}
