// Package generate provides the generate command and its docs and
// completion subcommands.
package generate

import (
	"github.com/spf13/cobra"

	"github.com/harborline/mariner/internal/appcontext"
	"github.com/harborline/mariner/internal/cmd/emoji"
	"github.com/harborline/mariner/internal/tools/docs"
)

// NewCommand creates the generate command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		GroupID: "management",
		Short:   "Generate artifacts (docs, completion)",
		Example: "  mariner generate docs --output ./docs\n  mariner generate completion zsh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(NewDocsCommand(app), NewCompletionCommand())
	return cmd
}

// NewDocsCommand creates the generate docs subcommand.
func NewDocsCommand(app appcontext.Interface) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate markdown reference pages for the content library",
		Long: `Writes README.md, forms.md, ships.md and ports/<slug>.md to the output
directory. Form PDF links use the configured asset base URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			g := docs.New(
				docs.WithOutputDir(outputDir),
				docs.WithAssets(client.Assets()),
				docs.WithLogger(app.Logger()),
			)
			if err := g.Generate(cmd.Context(), client.Library()); err != nil {
				return err
			}
			cmd.Printf("%s Documentation written to %s\n", emoji.Success, g.OutputDir())
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", "./docs", "output directory")
	return cmd
}

// NewCompletionCommand creates the generate completion subcommand.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate a shell completion script",
		Long: `Writes a completion script to stdout.

  $ source <(mariner generate completion bash)
  $ mariner generate completion zsh > "${fpath[1]}/_mariner"
  $ mariner generate completion fish > ~/.config/fish/completions/mariner.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
