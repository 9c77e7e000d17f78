package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/j-veylop/movierec-dashboard-tui/internal/explore"
)

type exploreOptions struct {
	sep  string
	rows int
}

func newExploreCommand() *cobra.Command {
	opts := &exploreOptions{}

	cmd := &cobra.Command{
		Use:   "explore FILE",
		Short: "Print an overview of a CSV or TSV file",
		Long: `Print an overview of a delimited data file: the first rows, column types
and non-null counts, the share of missing values, unique counts of text
columns and describe() statistics of numeric columns.

Files ending in .tsv or .tsv.gz are read tab separated, everything else comma
separated; --sep overrides it. Gzip compressed files are detected by their
.gz extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.sep, "sep", "", "Field separator (default from file extension)")
	cmd.Flags().IntVar(&opts.rows, "rows", 5, "Number of rows shown by head")

	return cmd
}

func runExplore(cmd *cobra.Command, path string, opts *exploreOptions) error {
	sep, err := parseSeparator(opts.sep)
	if err != nil {
		return err
	}
	if opts.rows < 0 {
		return fmt.Errorf("--rows must not be negative, got %d", opts.rows)
	}

	profile, err := explore.File(path, explore.Options{Sep: sep, HeadRows: opts.rows})
	if err != nil {
		return fmt.Errorf("failed to explore %s: %w", path, err)
	}
	explore.Write(cmd.OutOrStdout(), profile, explore.TerminalWidth())
	return nil
}

// parseSeparator accepts a single character or the escapes \t and tab.
func parseSeparator(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("--sep must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
