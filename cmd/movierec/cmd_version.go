package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j-veylop/movierec-dashboard-tui/internal/version"
)

func newVersionCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if !verbose {
				fmt.Fprintln(out, version.Info())
				return
			}
			for _, f := range version.Fields() {
				fmt.Fprintf(out, "%-12s %s\n", f.Label+":", f.Value)
			}
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every build field")

	return cmd
}
