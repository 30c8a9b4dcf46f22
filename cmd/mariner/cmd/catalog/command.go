// Package catalog provides the forms, ships and categories commands.
package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/internal/appcontext"
	"github.com/harborline/mariner/internal/cmd/output"
	"github.com/harborline/mariner/internal/cmd/table"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/filter"
	"github.com/harborline/mariner/pkg/surface"
)

// listResult is the structured output of a filtered listing.
type listResult struct {
	Catalog string            `json:"catalog" yaml:"catalog"`
	State   filter.State      `json:"state" yaml:"state"`
	Summary filter.Summary    `json:"summary" yaml:"summary"`
	Records []catalogs.Record `json:"records" yaml:"records"`
}

// NewFormsCommand creates the forms command.
func NewFormsCommand(app appcontext.Interface) *cobra.Command {
	return newCatalogCommand(app, catalogs.CatalogForms, "List the forms directory",
		`  mariner forms                        # Every form
  mariner forms --category medical     # One category
  mariner forms --search leave         # Title or description contains "leave"
  mariner forms leave-chit             # One form`)
}

// NewShipsCommand creates the ships command.
func NewShipsCommand(app appcontext.Interface) *cobra.Command {
	return newCatalogCommand(app, catalogs.CatalogShips, "List the ship-class reference",
		`  mariner ships                        # Every ship class
  mariner ships --category tanker      # One category
  mariner ships -o json                # JSON output`)
}

func newCatalogCommand(app appcontext.Interface, name, short, example string) *cobra.Command {
	var category, search string

	cmd := &cobra.Command{
		Use:     name + " [id]",
		GroupID: "core",
		Short:   short,
		Long: short + `.

With an id, shows that record. Otherwise lists the records visible under
--category (a category of the catalog, or "all") and --search (a
case-insensitive substring of the title or description).`,
		Example: example,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			store, err := client.Catalog(name)
			if err != nil {
				return err
			}
			format := output.DetectFormat(app.OutputFormat())

			if len(args) == 1 {
				r, err := store.Get(args[0])
				if err != nil {
					return err
				}
				return output.Render(cmd.OutOrStdout(), format, r, func(bool) table.Data {
					return table.Records([]catalogs.Record{r}, surface.Tabs(store, ""), client.Assets(), true)
				})
			}

			ctrl := filter.NewController(store)
			if err := ctrl.Apply(filter.State{Category: catalogs.Category(category), Query: search}); err != nil {
				return err
			}
			result := listResult{
				Catalog: name,
				State:   ctrl.State(),
				Summary: ctrl.Summary(),
				Records: ctrl.Visible(),
			}

			app.Logger().Debug().
				Str("catalog", name).
				Str("category", string(result.State.Category)).
				Str("query", search).
				Int("showing", result.Summary.Showing).
				Msg("Filtered catalog")

			err = output.Render(cmd.OutOrStdout(), format, result, func(wide bool) table.Data {
				return table.Records(result.Records, surface.Tabs(store, result.State.Category), client.Assets(), wide)
			})
			if err != nil || !format.IsTable() {
				return err
			}
			return printSummary(cmd, result.State, result.Summary)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "show one category (default all)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive text filter")
	return cmd
}

// printSummary writes the "showing N of M" line under a table.
func printSummary(cmd *cobra.Command, s filter.State, sum filter.Summary) error {
	if sum.Empty {
		msg := "No entries match this category."
		if s.Query != "" {
			msg = fmt.Sprintf("No entries match %q.", s.Query)
		}
		cmd.Println(msg)
	}
	cmd.Printf("Showing %d of %d\n", sum.Showing, sum.Total)
	return nil
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:       "categories <forms|ships|port-slug>",
		GroupID:   "core",
		Short:     "List the categories of a catalog with their counts",
		Example:   "  mariner categories forms\n  mariner categories rotterdam",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{catalogs.CatalogForms, catalogs.CatalogShips},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			store, err := storeFor(client, args[0])
			if err != nil {
				return err
			}
			tabs := surface.Tabs(store, "")
			return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), tabs, func(bool) table.Data {
				return table.Tabs(tabs)
			})
		},
	}
}

// storeFor resolves a catalog name or a port slug to a store.
func storeFor(client mariner.Client, name string) (*catalogs.Store, error) {
	if name == catalogs.CatalogForms || name == catalogs.CatalogShips {
		return client.Catalog(name)
	}
	p, err := client.Port(name)
	if err != nil {
		return nil, err
	}
	return p.Spots, nil
}
