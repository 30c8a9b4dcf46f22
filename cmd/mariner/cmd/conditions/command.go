// Package conditions provides the conditions command.
package conditions

import (
	"github.com/spf13/cobra"

	"github.com/harborline/mariner/internal/appcontext"
	"github.com/harborline/mariner/internal/cmd/emoji"
	"github.com/harborline/mariner/internal/cmd/output"
	"github.com/harborline/mariner/internal/cmd/table"
)

// NewCommand creates the conditions command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "conditions <port-slug>",
		GroupID: "core",
		Short:   "Fetch the live weather, exchange rates and local time of a port",
		Long: `Fetches the current conditions of a port guide from the configured
weather and exchange rate sources.

When one source fails the other's data is still shown and the failure is
listed as a warning. The command fails only when nothing could be
fetched.`,
		Example: "  mariner conditions rotterdam\n  mariner conditions singapore -o json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			snap, err := client.RefreshConditions(cmd.Context(), args[0])
			if err != nil {
				if snap.Empty() {
					return err
				}
				app.Logger().Warn().Err(err).Str("port", args[0]).Msg("Partial conditions")
			}

			format := output.DetectFormat(app.OutputFormat())
			if err := output.Render(cmd.OutOrStdout(), format, snap, func(bool) table.Data {
				return table.Conditions(snap)
			}); err != nil {
				return err
			}
			if format.IsTable() {
				for _, e := range snap.Errors {
					cmd.PrintErrf("%s %s\n", emoji.Warning, e)
				}
			}
			return nil
		},
	}
}
