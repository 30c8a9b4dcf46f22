// Package browse provides the browse command, an interactive terminal
// browser for the catalogs and port guides.
package browse

import (
	"github.com/spf13/cobra"

	"github.com/harborline/mariner/internal/appcontext"
	"github.com/harborline/mariner/internal/tui"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/surface"
)

// NewCommand creates the browse command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:     "browse [forms|ships|port-slug]",
		GroupID: "core",
		Short:   "Browse a catalog or port guide interactively",
		Long: `Opens a terminal browser over the forms directory (default), the
ship classes or the spots of a port guide.

Keys: tab / shift+tab switch category, left / right page, / searches,
esc or r resets, q quits.`,
		Example: "  mariner browse\n  mariner browse ships\n  mariner browse rotterdam",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			name := catalogs.CatalogForms
			if len(args) == 1 {
				name = args[0]
			}

			var (
				title    string
				carousel *surface.Carousel
			)
			switch name {
			case catalogs.CatalogForms, catalogs.CatalogShips:
				store, err := client.Catalog(name)
				if err != nil {
					return err
				}
				title = map[string]string{
					catalogs.CatalogForms: "Forms directory",
					catalogs.CatalogShips: "Ship classes",
				}[name]
				carousel, err = surface.NewCarousel(store, pageSize)
				if err != nil {
					return err
				}
			default:
				port, err := client.Port(name)
				if err != nil {
					return err
				}
				title = port.Name
				carousel, err = client.Carousel(port.Slug, pageSize)
				if err != nil {
					return err
				}
			}

			app.Logger().Debug().Str("catalog", name).Int("page_size", pageSize).Msg("Starting browser")
			return tui.Run(cmd.Context(), tui.New(title, carousel, client.Assets()))
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "entries per page")
	return cmd
}
