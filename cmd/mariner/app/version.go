package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "mariner version %s\n", a.version)
			_, _ = fmt.Fprintf(out, "commit: %s\n", a.commit)
			_, _ = fmt.Fprintf(out, "built: %s\n", a.date)
			_, _ = fmt.Fprintf(out, "built by: %s\n", a.builtBy)
			_, _ = fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			_, _ = fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
