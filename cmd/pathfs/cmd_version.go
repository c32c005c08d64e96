package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Build metadata, set via -ldflags at release time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print pathfs version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(stdout, "pathfs %s (commit: %s, built: %s)\n", version, commit, date) //nolint:errcheck // best-effort stdout
		},
	}
}
