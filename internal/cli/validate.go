package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/bpecheck/internal/fixture"
)

// SetSummary describes one fixture set.
type SetSummary struct {
	Keyword string `json:"keyword"`
	Cases   int    `json:"cases"`
	Errors  int    `json:"error_cases"` // cases expecting an error
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool         `json:"valid"`
	Path  string       `json:"path"`
	Sets  []SetSummary `json:"sets,omitempty"`
	Error *FileIssue   `json:"error,omitempty"`
}

// FileIssue locates a problem in a fixture file.
type FileIssue struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <fixtures-file>",
		Short: "Validate a fixture file without running it",
		Long: `Validate a YAML or CUE fixture file.

Checks the document shape, error kinds and markers, and for CUE files
the embedded schema. Nothing is executed.

Exit codes:
  0 - File is valid
  1 - File is malformed
  2 - File cannot be read`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cat, err := fixture.LoadFile(path)
	if err != nil {
		var fe *fixture.FileError
		if errors.As(err, &fe) {
			return outputValidationError(formatter, path, fe)
		}
		return commandError(formatter, ErrCodeFixtures, "cannot validate fixtures", err)
	}

	result := ValidationResult{Valid: true, Path: path, Sets: summarize(cat)}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %s: %d fixture set(s) valid\n", path, len(result.Sets))
	for _, s := range result.Sets {
		fmt.Fprintf(formatter.Writer, "  %-8s %d case(s)\n", s.Keyword, s.Cases)
	}
	return nil
}

// summarize returns one SetSummary per set, in catalog order.
func summarize(cat *fixture.Catalog) []SetSummary {
	sets := cat.Sets()
	out := make([]SetSummary, len(sets))
	for i, set := range sets {
		out[i] = SetSummary{Keyword: set.Keyword, Cases: len(set.Cases)}
		for _, c := range set.Cases {
			if c.Expect.IsError() {
				out[i].Errors++
			}
		}
	}
	return out
}

// outputValidationError reports a malformed file. Validation failures exit 1.
func outputValidationError(formatter *OutputFormatter, path string, fe *fixture.FileError) error {
	issue := &FileIssue{Message: fe.Message}
	if fe.Pos.IsValid() {
		issue.Line = fe.Pos.Line()
		issue.Column = fe.Pos.Column()
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Path: path, Error: issue},
			Error: &CLIError{
				Code:    ErrCodeFixtures,
				Message: fe.Error(),
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return WrapExitError(ExitFailure, "validation failed", fe)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	if issue.Line > 0 {
		fmt.Fprintf(formatter.Writer, "line %d\n", issue.Line)
	}
	fmt.Fprintf(formatter.Writer, "  %s\n", fe.Error())

	return WrapExitError(ExitFailure, "validation failed", fe)
}
