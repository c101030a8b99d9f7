package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/album-grabber/internal/app"
	"github.com/oshokin/album-grabber/internal/config"
	"github.com/oshokin/album-grabber/internal/logger"
	"github.com/oshokin/album-grabber/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "album-grabber [flags] {url}",
		Short: "Download every track of an album from a music archive website.",
		Long: `Album Grabber downloads all tracks listed on an album page of a music archive website.

For each track it opens the track page, picks the download link of the requested quality
(low = first link, usually MP3; high = last link, usually FLAC) and saves the file
into <output>/<album name>, where the album name is the last part of the URL with
hyphens replaced by spaces.`,
		Version:          version.Short(),
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			// No URL: behave like --help.
			if len(args) == 0 {
				_ = cmd.Help()

				return
			}

			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			logger.SetLevel(appConfig.ParsedLogLevel)

			app.ExecuteRootCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	// A signal only cancels ctx: the command stops on its own and picks the exit code.
	err := rootCmd.ExecuteContext(ctx)
	cobra.CheckErr(err)
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.SetVersionTemplate("album-grabber " + version.Full() + "\n")

	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s', used only if it exists)",
			config.DefaultConfigFilename))

	registerRootFlags(rootCmd.Flags())

	rootCmd.AddCommand(configCmd)
}

func registerRootFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"quality",
		"q",
		config.QualityLow,
		"quality of the files to download: low (first link, usually MP3) or high (last link, usually FLAC).")

	flags.StringP(
		"output",
		"o",
		"",
		fmt.Sprintf("root directory for album folders (default is '%s').", config.DefaultOutputPath))

	flags.BoolP(
		"dry-run",
		"n",
		false,
		"resolve every download link without writing anything to disk.")

	flags.Int64P(
		"jobs",
		"j",
		0,
		"number of tracks downloaded at the same time (default is 1, one after another).")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("quality"); flag != nil && flag.Changed {
		cfg.Quality, _ = flags.GetString("quality")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("dry-run"); flag != nil && flag.Changed {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}

	if flag := flags.Lookup("jobs"); flag != nil && flag.Changed {
		cfg.MaxConcurrentDownloads, _ = flags.GetInt64("jobs")
	}

	return config.ValidateConfig(cfg)
}
