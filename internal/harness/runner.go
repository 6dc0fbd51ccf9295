package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/roach88/bpecheck/internal/fixture"
)

// Output markers.
const (
	passMark = "✅"
	failMark = "❌"
	hintMark = "❗"
)

// equalOpts compare by value: an empty slice or map equals nil, unexported
// fields are compared rather than rejected.
var equalOpts = cmp.Options{
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Runner executes fixture cases against one function and prints a verdict
// line per case.
type Runner struct {
	out    io.Writer
	logger *slog.Logger
}

// NewRunner creates a runner printing to out. A nil out prints to stdout; a
// nil logger discards debug logs.
func NewRunner(out io.Writer, logger *slog.Logger) *Runner {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{out: out, logger: logger}
}

// Run executes cases against fn and returns nil when all of them pass.
//
// A failed comparison is printed and counted; after the batch a *BatchError
// carries the count. An error returned (or a panic raised) by fn in a case
// expecting a value aborts the batch: the case hint is printed and the error
// is returned as is.
func (r *Runner) Run(fn any, cases []fixture.Case) error {
	s, ok := fn.(Subject)
	if !ok {
		s = Func(fn)
	}
	_, err := r.Execute(s, fixture.Set{Cases: cases})
	return err
}

// Execute runs set against the subject and returns the per-case report along
// with the same error Run would return. The report is never nil.
func (r *Runner) Execute(s Subject, set fixture.Set) (*Report, error) {
	report := NewReport(s.Name, set.Keyword, len(set.Cases))

	c, err := newCallable(s)
	if err != nil {
		report.Fail(err)
		return report, err
	}
	prepared, err := c.prepare(set.Cases)
	if err != nil {
		report.Fail(err)
		return report, err
	}

	log := r.logger.With("subject", s.Name, "keyword", set.Keyword)
	log.Debug("running fixture set", "cases", len(set.Cases))

	for i, tc := range set.Cases {
		// Render the input before the call; the function gets its own copy.
		cr := CaseResult{Index: i, Args: FormatArgs(tc.Args), Hint: tc.Hint}
		result, callErr := c.call(cloneArgs(prepared[i].in))

		if tc.Expect.IsError() {
			kind := tc.Expect.Kind()
			cr.Expected = kind.String() + " error"
			switch {
			case kind.Matches(callErr):
				cr.Pass = true
				r.printf("%s TEST %d\n", passMark, i)
			case callErr != nil:
				cr.Obtained = "error: " + callErr.Error()
				r.printf("%s TEST %d | arguments: %s | expected error: %s | obtained error: %v\n",
					failMark, i, cr.Args, cr.Expected, callErr)
				r.printHint(tc.Hint)
			default:
				cr.Obtained = FormatValue(result)
				r.printf("%s TEST %d | arguments: %s | expected error: %s | obtained: %s\n",
					failMark, i, cr.Args, cr.Expected, cr.Obtained)
				r.printHint(tc.Hint)
			}
			log.Debug("case", "index", i, "pass", cr.Pass, "expected", cr.Expected, "error", callErr)
			report.AddCase(cr)
			continue
		}

		expected := prepared[i].expected
		cr.Expected = FormatValue(expected)

		if callErr != nil {
			if tc.Hint != "" {
				r.printf("%s %s\n", hintMark, tc.Hint)
			}
			cr.Obtained = "error: " + callErr.Error()
			report.AddCase(cr)
			report.Aborted = true
			report.Fail(callErr)

			attrs := []any{"index", i, "error", callErr}
			var pe *PanicError
			if errors.As(callErr, &pe) {
				attrs = append(attrs, "stack", string(pe.Stack))
			}
			log.Debug("aborting batch on unexpected error", attrs...)
			return report, callErr
		}

		cr.Obtained = FormatValue(result)
		if cmp.Equal(expected, result, equalOpts) {
			cr.Pass = true
			r.printf("%s TEST %d\n", passMark, i)
			log.Debug("case", "index", i, "pass", true)
		} else {
			cr.Diff = cmp.Diff(expected, result, equalOpts)
			r.printf("%s TEST %d | arguments: %s | expected: %s | obtained: %s\n",
				failMark, i, cr.Args, cr.Expected, cr.Obtained)
			r.printHint(tc.Hint)
			log.Debug("case", "index", i, "pass", false, "diff", cr.Diff)
		}
		report.AddCase(cr)
	}

	if report.Failures > 0 {
		err := &BatchError{Failures: report.Failures, Total: report.Total}
		report.Fail(err)
		return report, err
	}
	return report, nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) printHint(hint string) {
	if hint != "" {
		r.printf("%s\n", hint)
	}
}
