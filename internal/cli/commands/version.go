package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/leapstack-labs/triptjs/pkg/reserved"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display triptjs version and the supported ECMAScript dialects.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "triptjs v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dialects: %s (default %s)\n", strings.Join(reserved.Names(), ", "), reserved.Latest)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Built with %s\n", runtime.Version())
		},
	}
}
