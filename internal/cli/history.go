package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/bpecheck/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Subject  string
}

// HistoryResult holds the listed runs.
type HistoryResult struct {
	Runs []store.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history --db <path>",
		Short: "Show recorded runs",
		Long: `Show runs recorded by "bpecheck test --db".

Runs are listed newest first. With --subject, the runs of one function
are listed in the order they were recorded.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "run history database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "only show runs of this function")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return commandError(formatter, ErrCodeStore, "failed to open run history", err)
	}
	defer st.Close()

	var runs []store.Run
	if opts.Subject != "" {
		runs, err = st.ReadRunsBySubject(cmd.Context(), opts.Subject)
		if opts.Limit > 0 && len(runs) > opts.Limit {
			runs = runs[len(runs)-opts.Limit:]
		}
	} else {
		runs, err = st.ReadRuns(cmd.Context(), opts.Limit)
	}
	if err != nil {
		return commandError(formatter, ErrCodeStore, "failed to read run history", err)
	}

	if opts.Format == "json" {
		return formatter.Success(HistoryResult{Runs: runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSUBJECT\tKEYWORD\tRESULT\tSOLUTION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.Seq, r.Subject, r.Keyword, runOutcome(r), r.Solution)
	}
	return tw.Flush()
}

// runOutcome summarizes a run in a few words.
func runOutcome(r store.Run) string {
	switch {
	case r.Pass():
		return fmt.Sprintf("pass %d/%d", r.Passed, r.Total)
	case r.Aborted:
		return fmt.Sprintf("aborted %d/%d", r.Passed, r.Total)
	default:
		return fmt.Sprintf("fail %d/%d", r.Passed, r.Total)
	}
}
