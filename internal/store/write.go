package store

import (
	"context"
	"fmt"

	"github.com/roach88/bpecheck/internal/harness"
)

// Run is a stored harness report.
type Run struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	Solution string `json:"solution,omitempty"`
	Subject  string `json:"subject"`
	Keyword  string `json:"keyword"`
	Total    int    `json:"total"`
	Passed   int    `json:"passed"`
	Failures int    `json:"failures"`
	Aborted  bool   `json:"aborted,omitempty"`
	Error    string `json:"error,omitempty"`

	// Cases is only populated by ReadRun.
	Cases []harness.CaseResult `json:"cases,omitempty"`
}

// Pass reports whether the run had no failures, no abort and no error.
func (r Run) Pass() bool {
	return r.Failures == 0 && !r.Aborted && r.Error == ""
}

// WriteRun stores a report and its cases in one transaction. solution names
// the file the subject was loaded from and may be empty.
//
// The run's seq is one more than the highest stored seq.
func (s *Store) WriteRun(ctx context.Context, solution string, report *harness.Report) (Run, error) {
	if report == nil {
		return Run{}, fmt.Errorf("write run: nil report")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	run := Run{
		ID:       s.ids.Generate(),
		Seq:      seq,
		Solution: solution,
		Subject:  report.Subject,
		Keyword:  report.Keyword,
		Total:    report.Total,
		Passed:   report.Passed,
		Failures: report.Failures,
		Aborted:  report.Aborted,
		Error:    report.Error,
		Cases:    report.Cases,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, solution, subject, keyword, total, passed, failures, aborted, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Solution,
		run.Subject,
		run.Keyword,
		run.Total,
		run.Passed,
		run.Failures,
		boolToInt(run.Aborted),
		run.Error,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	for _, c := range report.Cases {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO case_results
			(run_id, idx, pass, arguments, expected, obtained, hint, diff)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID,
			c.Index,
			boolToInt(c.Pass),
			c.Args,
			c.Expected,
			c.Obtained,
			c.Hint,
			c.Diff,
		)
		if err != nil {
			return Run{}, fmt.Errorf("write run: case %d: %w", c.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
