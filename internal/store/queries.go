package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/benedict2310/fuzzstats/pkg/dataset"
)

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// RunRow is one persisted campaign run.
type RunRow struct {
	ID        string
	Fuzzer    string
	Target    string
	Coverage  float64
	Runtime   string
	Source    string
	CreatedAt string
}

type Queries struct {
	db queryer
}

func NewQueries(db queryer) *Queries {
	return &Queries{db: db}
}

func (q *Queries) InsertRun(ctx context.Context, in RunRow) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO runs(id, fuzzer, target, coverage, runtime, source) VALUES(?, ?, ?, ?, ?, ?)`,
		in.ID, in.Fuzzer, in.Target, in.Coverage, in.Runtime, in.Source)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns all runs in insertion order. The runtime filter is
// optional; empty matches everything.
func (q *Queries) ListRuns(ctx context.Context, runtime string) ([]RunRow, error) {
	query := `SELECT id, fuzzer, target, coverage, runtime, source, created_at FROM runs`
	args := []any{}
	if runtime != "" {
		query += ` WHERE runtime = ?`
		args = append(args, runtime)
	}
	query += ` ORDER BY created_at, id`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.Fuzzer, &r.Target, &r.Coverage, &r.Runtime, &r.Source, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// LoadResults converts stored runs into campaign results for aggregation.
func (q *Queries) LoadResults(ctx context.Context, runtime string) ([]dataset.CampaignResult, error) {
	rows, err := q.ListRuns(ctx, runtime)
	if err != nil {
		return nil, err
	}
	out := make([]dataset.CampaignResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, dataset.CampaignResult{
			RunID:    r.ID,
			Fuzzer:   r.Fuzzer,
			Target:   r.Target,
			Coverage: r.Coverage,
			Runtime:  r.Runtime,
			Source:   r.Source,
		})
	}
	return out, nil
}
