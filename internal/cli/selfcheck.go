package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/bpecheck/internal/harness"
	"github.com/roach88/bpecheck/internal/reference"
)

// referenceSolution names the reference tokenizer in results.
const referenceSolution = "(reference)"

// SelfcheckOptions holds flags for the selfcheck command.
type SelfcheckOptions struct {
	*RootOptions
	Fixtures string
}

// NewSelfcheckCommand creates the selfcheck command.
func NewSelfcheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelfcheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "selfcheck",
		Short: "Run every fixture set against the reference tokenizer",
		Long: `Run every fixture set against the reference tokenizer.

A failure means the fixtures are wrong, not the reference. Use it to
check a fixture file before handing it out:

  bpecheck selfcheck --fixtures extra.yaml

Keywords without a reference function are skipped.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfcheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fixtures, "fixtures", "", "additional fixture file (.yaml, .yml or .cue)")

	return cmd
}

func runSelfcheck(opts *SelfcheckOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, formatter.GetErrWriter())

	cat, err := loadCatalog(opts.Fixtures, formatter)
	if err != nil {
		return commandError(formatter, ErrCodeFixtures, "failed to load fixtures", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		out = io.Discard
	}
	runner := harness.NewRunner(out, logger)
	funcs := reference.Funcs()

	result := TestResult{Solution: referenceSolution, Reports: []*harness.Report{}}
	for _, set := range cat.Sets() {
		fn, ok := funcs[set.Keyword]
		if !ok {
			result.Skipped = append(result.Skipped, set.Keyword)
			continue
		}

		s := harness.Func(fn)
		if opts.Format != "json" {
			fmt.Fprintf(out, "=== %s (%s)\n", s.Name, set.Keyword)
		}
		report, runErr := runner.Execute(s, set)
		result.Reports = append(result.Reports, report)
		result.Total++
		if runErr == nil {
			result.Passed++
		} else {
			result.Failed++
		}
		if opts.Format != "json" {
			printVerdict(out, report, runErr)
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result, "no reference")
}
