// Package migrations holds the versioned schema of the run store.
package migrations

type Migration struct {
	Version int
	Name    string
	UpSQL   string
}

const runsSchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    fuzzer TEXT NOT NULL,
    target TEXT NOT NULL,
    coverage REAL NOT NULL,
    runtime TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_target_fuzzer ON runs(target, fuzzer);
`

// All returns every known migration. Order does not matter here; the
// migrator sorts by version.
func All() []Migration {
	return []Migration{
		{Version: 1, Name: "runs_schema", UpSQL: runsSchemaSQL},
	}
}
