// Package cli implements the tractstack-inspector command line.
package cli

import (
	"io"
	"log/slog"

	"github.com/AtRiskMedia/tractstack-inspector/internal/application/container"
	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/inspector"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/persistence/database"
	"github.com/AtRiskMedia/tractstack-inspector/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var noColor bool

// storeOpener builds the container the store commands run against. Tests
// swap it for an in-memory store.
var storeOpener = func(cb inspector.Clipboard) (*container.Container, error) {
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile: config.LogToFile,
		LogDirectory: config.LogDirectory,
		JSONFormat:   config.LogJSON,
		DefaultLevel: logging.ParseLevel(config.LogLevel),
		Output:       io.Discard,
	})
	if err != nil {
		return nil, err
	}
	return container.NewContainer(container.Options{
		Database:  database.OptionsFromConfig(),
		Clipboard: cb,
	}, logger)
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tractstack-inspector",
		Short: "Component inspector and page-builder store",
		Long: `tractstack-inspector serves the component inspector for page-builder canvases.

Without a subcommand it starts the HTTP server. The inspect, export and seed
commands work directly against the configured SQLite or Turso database.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: runServe,
	}

	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newServeCommand(),
		newInspectCommand(),
		newEditCommand(),
		newExportCommand(),
		newSeedCommand(),
		newHashPasswordCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func closeQuietly(c *container.Container) {
	if err := c.Close(); err != nil {
		c.Logger.System().Warn("close failed", slog.String("error", err.Error()))
	}
}
