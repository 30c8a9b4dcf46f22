package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/harborline/mariner/cmd/mariner/cmd/browse"
	"github.com/harborline/mariner/cmd/mariner/cmd/catalog"
	"github.com/harborline/mariner/cmd/mariner/cmd/conditions"
	"github.com/harborline/mariner/cmd/mariner/cmd/generate"
	"github.com/harborline/mariner/cmd/mariner/cmd/ports"
	"github.com/harborline/mariner/cmd/mariner/cmd/serve"
	"github.com/harborline/mariner/cmd/mariner/cmd/validate"
	"github.com/harborline/mariner/internal/cmd/output"
)

// Execute runs the mariner CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "mariner",
		Short:   "Crew reference: forms, ship classes and port guides",
		Version: a.version,
		Long: `Mariner is a reference for seafarers: a forms directory, a ship-class
reference and port guides with live weather, exchange rates and local time.

Content is embedded in the binary and can be replaced with a data
directory (MARINER_DATA_DIR). Every catalog can be filtered by category
and searched by text.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "management", Title: "Management Commands:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.mariner.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: "+formatList())
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("mariner {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand runs before every command. An explicit --config reloads
// the configuration, then the flags are applied on top and the logger is
// rebuilt.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if file := mustGetString(cmd, "config"); file != "" {
		config, err := LoadConfig(file)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)
	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	a.logger.Debug().
		Str("config_file", a.config.ConfigFile).
		Str("data_dir", a.config.DataDir).
		Bool("refresh", a.config.RefreshEnabled).
		Msg("Configuration loaded")
	return nil
}

func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(catalog.NewFormsCommand(a))
	rootCmd.AddCommand(catalog.NewShipsCommand(a))
	rootCmd.AddCommand(catalog.NewCategoriesCommand(a))
	rootCmd.AddCommand(ports.NewCommand(a))
	rootCmd.AddCommand(conditions.NewCommand(a))
	rootCmd.AddCommand(browse.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(generate.NewCommand(a))

	rootCmd.AddCommand(a.NewVersionCommand())
}

func formatList() string {
	s := ""
	for i, f := range output.Formats {
		if i > 0 {
			s += ", "
		}
		s += string(f)
	}
	return s
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool returns a persistent flag defined by createRootCommand.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString returns a persistent flag defined by createRootCommand.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
