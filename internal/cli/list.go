package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Fixtures string
}

// ListResult holds the catalog listing.
type ListResult struct {
	Sets []SetSummary `json:"sets"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fixture keywords",
		Long: `List the fixture keywords in inference order with their case counts.

A function is matched to the first keyword its name contains, ignoring
case. Sets from --fixtures replace built-in sets of the same keyword and
append new keywords at the end.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fixtures, "fixtures", "", "additional fixture file (.yaml, .yml or .cue)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := loadCatalog(opts.Fixtures, formatter)
	if err != nil {
		return commandError(formatter, ErrCodeFixtures, "failed to load fixtures", err)
	}

	result := ListResult{Sets: summarize(cat)}
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	for _, s := range result.Sets {
		fmt.Fprintf(w, "%-8s %2d case(s)", s.Keyword, s.Cases)
		if s.Errors > 0 {
			fmt.Fprintf(w, ", %d expecting an error", s.Errors)
		}
		fmt.Fprintln(w)
	}
	return nil
}
