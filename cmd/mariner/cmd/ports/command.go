// Package ports provides the ports command: the list of port guides and
// the paged spots carousel of one port.
package ports

import (
	"github.com/spf13/cobra"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/internal/appcontext"
	"github.com/harborline/mariner/internal/cmd/output"
	"github.com/harborline/mariner/internal/cmd/table"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
	"github.com/harborline/mariner/pkg/filter"
	"github.com/harborline/mariner/pkg/markers"
	"github.com/harborline/mariner/pkg/surface"
)

// Options are the flags of the ports command.
type Options struct {
	Category string
	Search   string
	Page     int
	PageSize int
	Focus    string
	Markers  bool
}

// guideResult is the structured output of one port guide page.
type guideResult struct {
	Port *catalogs.Port `json:"port" yaml:"port"`
	View surface.View   `json:"view" yaml:"view"`
}

// NewCommand creates the ports command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "ports [slug]",
		GroupID: "core",
		Short:   "List port guides or page through the spots of one port",
		Long: `Without a slug, lists the port guides.

With a slug, shows one page of the port's spots carousel. --category and
--search filter the spots and --page moves through the result. --focus
selects a spot's map marker, which pages the carousel to that spot.`,
		Example: `  mariner ports
  mariner ports rotterdam
  mariner ports rotterdam --category dining --page 2
  mariner ports rotterdam --focus erasmus-mc
  mariner ports rotterdam --markers`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			format := output.DetectFormat(app.OutputFormat())

			if len(args) == 0 {
				ports := client.Ports()
				return output.Render(cmd.OutOrStdout(), format, ports, func(wide bool) table.Data {
					return table.Ports(ports, wide)
				})
			}

			port, err := client.Port(args[0])
			if err != nil {
				return err
			}
			if opts.Markers {
				ms := markers.NewMap(port.Spots).Markers()
				return output.Render(cmd.OutOrStdout(), format, ms, func(bool) table.Data {
					return table.Markers(ms)
				})
			}

			view, err := Guide(client, port, *opts)
			if err != nil {
				return err
			}
			result := guideResult{Port: port, View: view}
			err = output.Render(cmd.OutOrStdout(), format, result, func(wide bool) table.Data {
				return table.Records(view.Records, view.Tabs, client.Assets(), wide)
			})
			if err != nil || !format.IsTable() {
				return err
			}
			if view.Summary.Empty {
				cmd.Println("No spots match.")
			}
			cmd.Printf("%s: showing %d of %d, page %d of %d\n",
				port.Name, view.Summary.Showing, view.Summary.Total, view.PageIndex+1, view.PageCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "show one spot category (default all)")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "case-insensitive text filter")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "page to show, starting at 1")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", constants.DefaultPageSize, "spots per page")
	cmd.Flags().StringVar(&opts.Focus, "focus", "", "select a spot's marker and page to it")
	cmd.Flags().BoolVar(&opts.Markers, "markers", false, "list the map markers instead of the carousel")
	return cmd
}

// Guide builds the carousel page of port described by opts. A focus
// selects the spot's marker; the marker's popup action pages the
// carousel and replaces category, search and page.
func Guide(client mariner.Client, port *catalogs.Port, opts Options) (surface.View, error) {
	if opts.Page < 1 {
		return surface.View{}, errors.NewValidationError("page", opts.Page, "must be at least 1")
	}
	if opts.PageSize < 1 || opts.PageSize > constants.MaxPageSize {
		return surface.View{}, errors.NewValidationError("page_size", opts.PageSize, "is out of range")
	}

	c, err := client.Carousel(port.Slug, opts.PageSize)
	if err != nil {
		return surface.View{}, err
	}
	state := filter.State{Category: catalogs.Category(opts.Category), Query: opts.Search}
	if err := c.Restore(state, (opts.Page-1)*opts.PageSize); err != nil {
		return surface.View{}, err
	}

	if opts.Focus != "" {
		if err := markers.NewMap(port.Spots).SelectInto(opts.Focus, c); err != nil {
			return surface.View{}, err
		}
	}
	return c.View(), nil
}
