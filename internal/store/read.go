package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/bpecheck/internal/harness"
)

const runColumns = `id, seq, solution, subject, keyword, total, passed, failures, aborted, error`

// ReadRuns returns the most recent runs, newest first (ORDER BY seq DESC).
// A limit of zero or less returns every run. Cases are not loaded.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ReadRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryRuns(ctx, query, args...)
}

// ReadRunsBySubject returns the runs of one function, oldest first.
func (s *Store) ReadRunsBySubject(ctx context.Context, subject string) ([]Run, error) {
	return s.queryRuns(ctx, `SELECT `+runColumns+` FROM runs WHERE subject = ? ORDER BY seq ASC`, subject)
}

// ReadRun retrieves a run and its cases by id.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return Run{}, err
	}

	cases, err := s.ReadCases(ctx, id)
	if err != nil {
		return Run{}, err
	}
	run.Cases = cases
	return run, nil
}

// ReadCases returns the case results of a run ordered by index.
func (s *Store) ReadCases(ctx context.Context, runID string) ([]harness.CaseResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, pass, arguments, expected, obtained, hint, diff
		FROM case_results
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query case results: %w", err)
	}
	defer rows.Close()

	cases := []harness.CaseResult{}
	for rows.Next() {
		var c harness.CaseResult
		var pass int
		if err := rows.Scan(&c.Index, &pass, &c.Args, &c.Expected, &c.Obtained, &c.Hint, &c.Diff); err != nil {
			return nil, fmt.Errorf("scan case result: %w", err)
		}
		c.Pass = pass != 0
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case results: %w", err)
	}
	return cases, nil
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var aborted int
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.Solution,
		&run.Subject,
		&run.Keyword,
		&run.Total,
		&run.Passed,
		&run.Failures,
		&aborted,
		&run.Error,
	)
	if err == sql.ErrNoRows {
		return Run{}, err
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Aborted = aborted != 0
	return run, nil
}
