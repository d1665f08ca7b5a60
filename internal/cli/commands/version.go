package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary. Fields left empty print as
// "unknown".
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the bfcalc version, the commit it was built from and the build date.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "bfcalc v%s\n", orUnknown(info.Version))
			_, _ = fmt.Fprintf(out, "  commit: %s\n", orUnknown(info.GitCommit))
			_, _ = fmt.Fprintf(out, "  built:  %s\n", orUnknown(info.BuildDate))
		},
	}
}
