// Package validate provides the validate command, which checks a content
// directory the way the client loads it.
package validate

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harborline/mariner/internal/appcontext"
	"github.com/harborline/mariner/internal/cmd/emoji"
	"github.com/harborline/mariner/internal/cmd/output"
	"github.com/harborline/mariner/internal/cmd/table"
	"github.com/harborline/mariner/internal/embedded"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/errors"
)

// Result is the validation outcome of one content component.
type Result struct {
	Component  string `json:"component" yaml:"component"`
	OK         bool   `json:"ok" yaml:"ok"`
	Records    int    `json:"records" yaml:"records"`
	Categories int    `json:"categories" yaml:"categories"`
	Details    string `json:"details,omitempty" yaml:"details,omitempty"`
}

// NewCommand creates the validate command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "validate [dir]",
		GroupID: "management",
		Short:   "Validate a content directory",
		Long: `Loads forms.yaml, ships.yaml and ports/*.yaml from dir, or the embedded
content when dir is omitted, and reports every catalog.

Validation fails on unreadable or malformed files, duplicate record ids,
records in categories outside the catalog's taxonomy and port guides
missing required fields.`,
		Example: "  mariner validate\n  mariner validate ./content",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, fsys := "embedded", embedded.Catalog()
			if len(args) == 1 {
				source, fsys = args[0], os.DirFS(args[0])
			}

			results, err := Run(fsys)
			app.Logger().Debug().Str("source", source).Int("components", len(results)).Msg("Validated content")

			format := output.DetectFormat(app.OutputFormat())
			if rerr := output.Render(cmd.OutOrStdout(), format, results, func(bool) table.Data {
				return resultTable(results)
			}); rerr != nil {
				return rerr
			}
			if err != nil {
				return errors.NewValidationError("content", source, err.Error())
			}
			if format.IsTable() {
				cmd.Printf("%s %s content is valid\n", emoji.Success, source)
			}
			return nil
		},
	}
}

// Run loads fsys and returns one result per catalog and port guide. On a
// load failure it returns a single failed result and the error.
func Run(fsys fs.FS) ([]Result, error) {
	lib, err := catalogs.Load(fsys)
	if err != nil {
		return []Result{{Component: "content", Details: err.Error()}}, err
	}

	results := []Result{
		storeResult("forms", lib.Forms),
		storeResult("ships", lib.Ships),
	}
	for _, p := range lib.Ports() {
		r := storeResult("ports/"+p.Slug, p.Spots)
		r.Details = fmt.Sprintf("%s, %s (%s)", p.Name, p.Country, p.Currency)
		results = append(results, r)
	}
	return results, nil
}

func storeResult(component string, s *catalogs.Store) Result {
	return Result{
		Component:  component,
		OK:         true,
		Records:    s.Len(),
		Categories: s.Taxonomy().Len(),
	}
}

func resultTable(results []Result) table.Data {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := emoji.Success + " valid"
		if !r.OK {
			status = emoji.Error + " invalid"
		}
		rows = append(rows, []string{
			r.Component,
			status,
			strconv.Itoa(r.Records),
			strconv.Itoa(r.Categories),
			table.Truncate(r.Details, 80),
		})
	}
	return table.Data{
		Headers:         []string{"Component", "Status", "Records", "Categories", "Details"},
		Rows:            rows,
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignLeft},
	}
}
