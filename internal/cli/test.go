package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bpecheck/internal/fixture"
	"github.com/roach88/bpecheck/internal/harness"
	"github.com/roach88/bpecheck/internal/solution"
	"github.com/roach88/bpecheck/internal/store"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Func     string // single function to test
	Keyword  string // fixture set to run, inferred from names when empty
	Fixtures string // extra fixture file (YAML or CUE)
	Database string // run history database
}

// TestResult holds the overall test result.
type TestResult struct {
	Solution string            `json:"solution"`
	Reports  []*harness.Report `json:"reports"`
	Skipped  []string          `json:"skipped,omitempty"` // functions without a fixture set
	RunIDs   []string          `json:"run_ids,omitempty"`
	Passed   int               `json:"passed"`
	Failed   int               `json:"failed"`
	Total    int               `json:"total"`
}

// target is a function paired with the fixture set it runs.
type target struct {
	subject harness.Subject
	set     fixture.Set
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <solution.go>",
		Short: "Run fixture sets against a solution",
		Long: `Run fixture sets against the functions of a Go solution file.

Every top-level function whose name contains a fixture keyword is run
against that keyword's set; other functions are treated as helpers and
skipped. With --func only the named function runs.

Exit codes:
  0 - All functions passed
  1 - One or more functions failed
  2 - Command error (unreadable solution, bad fixture file, etc.)

Examples:
  bpecheck test tokenizer.go
  bpecheck test tokenizer.go --func MergePair
  bpecheck test tokenizer.go --func Helper --keyword encode
  bpecheck test tokenizer.go --fixtures extra.yaml --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Func, "func", "", "test only this function")
	cmd.Flags().StringVar(&opts.Keyword, "keyword", "", "fixture keyword to run (default: inferred from function names)")
	cmd.Flags().StringVar(&opts.Fixtures, "fixtures", "", "additional fixture file (.yaml, .yml or .cue)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record runs in this SQLite database")

	return cmd
}

func runTest(opts *TestOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, formatter.GetErrWriter())

	cat, err := loadCatalog(opts.Fixtures, formatter)
	if err != nil {
		return commandError(formatter, ErrCodeFixtures, "failed to load fixtures", err)
	}

	sol, err := solution.Load(path)
	if err != nil {
		return commandError(formatter, ErrCodeLoad, "failed to load solution", err)
	}
	formatter.VerboseLog("Loaded %d function(s) from %s", len(sol.Subjects), path)

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		out = io.Discard
	}
	dispatcher := harness.NewDispatcher(cat, harness.NewRunner(out, logger))

	targets, skipped, err := selectTargets(opts, sol, dispatcher)
	if err != nil {
		return commandError(formatter, ErrCodeNoMatch, "no fixtures to run", err)
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return commandError(formatter, ErrCodeStore, "failed to open run history", err)
		}
		defer st.Close()
	}

	result := TestResult{
		Solution: path,
		Reports:  make([]*harness.Report, 0, len(targets)),
		Skipped:  skipped,
		Total:    len(targets),
	}

	for _, tg := range targets {
		if opts.Format != "json" {
			fmt.Fprintf(out, "=== %s (%s)\n", tg.subject.Name, tg.set.Keyword)
		}

		report, runErr := dispatcher.Runner.Execute(tg.subject, tg.set)
		result.Reports = append(result.Reports, report)
		if runErr == nil {
			result.Passed++
		} else {
			result.Failed++
		}

		if opts.Format != "json" {
			printVerdict(out, report, runErr)
		}

		if st != nil {
			run, err := st.WriteRun(cmd.Context(), path, report)
			if err != nil {
				return commandError(formatter, ErrCodeStore, "failed to record run", err)
			}
			result.RunIDs = append(result.RunIDs, run.ID)
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result, "no fixtures")
}

// selectTargets resolves the fixture set of every function to run. With
// --func the named function must resolve; otherwise functions that match no
// keyword are returned as skipped.
func selectTargets(opts *TestOptions, sol *solution.Solution, d *harness.Dispatcher) ([]target, []string, error) {
	if opts.Func != "" {
		s, ok := sol.Lookup(opts.Func)
		if !ok {
			return nil, nil, fmt.Errorf("function %q not found in %s (functions: %s)",
				opts.Func, sol.Path, strings.Join(sol.Names(), ", "))
		}
		set, err := d.Resolve(s.Name, opts.Keyword)
		if err != nil {
			return nil, nil, err
		}
		return []target{{subject: s, set: set}}, nil, nil
	}

	if opts.Keyword != "" {
		if _, ok := d.Catalog.Lookup(opts.Keyword); !ok {
			return nil, nil, &harness.FixturesNotFoundError{Keyword: opts.Keyword, Keywords: d.Catalog.Keywords()}
		}
	}

	var targets []target
	var skipped []string
	for _, s := range sol.Subjects {
		set, err := d.Resolve(s.Name, "")
		if err != nil || (opts.Keyword != "" && set.Keyword != opts.Keyword) {
			skipped = append(skipped, s.Name)
			continue
		}
		targets = append(targets, target{subject: s, set: set})
	}

	if len(targets) == 0 {
		if opts.Keyword != "" {
			return nil, nil, fmt.Errorf("no function of %s matches keyword %q", sol.Path, opts.Keyword)
		}
		return nil, nil, fmt.Errorf("no function of %s matches a fixture keyword (keywords: %s)",
			sol.Path, strings.Join(d.Catalog.Keywords(), ", "))
	}
	return targets, skipped, nil
}

// printVerdict writes the one-line outcome of a function.
func printVerdict(w io.Writer, report *harness.Report, err error) {
	var batchErr *harness.BatchError
	switch {
	case err == nil:
		fmt.Fprintf(w, "✓ %s: %d/%d passed\n\n", report.Subject, report.Passed, report.Total)
	case errors.As(err, &batchErr):
		fmt.Fprintf(w, "✗ %s: %s\n\n", report.Subject, batchErr)
	default:
		fmt.Fprintf(w, "✗ %s: %v\n\n", report.Subject, err)
	}
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}

	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d function(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d function(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test summary as text. reason explains why
// skipped entries did not run.
func outputTestText(cmd *cobra.Command, result TestResult, reason string) error {
	w := cmd.OutOrStdout()

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped (%s): %s\n", reason, strings.Join(result.Skipped, ", "))
	}
	fmt.Fprintf(w, "Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d function(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All functions passed")
	return nil
}
