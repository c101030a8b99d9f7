package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/album-grabber/internal/app"
	"github.com/oshokin/album-grabber/internal/config"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file.",
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	configInitCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with default values.",
		Long: `Write a YAML configuration file with all settings at their default values.
The path defaults to '` + config.DefaultConfigFilename + `'. An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		// The configuration being created may not exist yet, so nothing is loaded.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			var path string
			if len(args) > 0 {
				path = args[0]
			}

			app.ExecuteConfigInitCommand(cmd.Context(), path)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up subcommands before the command is executed.
func init() {
	configCmd.AddCommand(configInitCmd)
}
