package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexzk1/ed-fc-companion/internal/config"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	journalDir string
	cargoFile  string
	debug      bool
}

// NewRootCmd creates the root Cobra command for the edfc CLI.
// Without a subcommand it behaves like "edfc run".
func NewRootCmd(ver string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "edfc",
		Short:        "Fleet carrier cargo companion for Elite Dangerous",
		Long:         "edfc: watch your fleet carrier cargo and highlight what a market buys",
		Version:      ver,
		Example:      rootCmdExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)
			setupLogging(cmd, opts.level(cfg))
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			cleanupLogging()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default $EDFC_HOME/config.yaml or ~/.edfc/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.journalDir, "journal-dir", "",
		"game journal directory (overrides config and EDFC_JOURNAL_DIR)")
	cmd.PersistentFlags().StringVar(&opts.cargoFile, "cargo-file", "",
		"carrier cargo snapshot file (overrides config and EDFC_CARGO_FILE)")

	cmd.AddCommand(newRunCmd(opts), newCargoCmd(), newStationsCmd(), newBuysCmd())
	return cmd
}

// load reads the config file and applies the path flags on top of it.
func (o *rootOptions) load() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.journalDir != "" {
		cfg.Journal.Dir = o.journalDir
	}
	if o.cargoFile != "" {
		cfg.Cargo.File = o.cargoFile
	}
	return cfg, nil
}

// level returns the effective log level; --debug wins over the config.
func (o *rootOptions) level(cfg *config.Config) string {
	if o.debug {
		return "debug"
	}
	return cfg.Logging.Level
}

const rootCmdExample = `  # Open the interactive cargo view
  edfc

  # Print the cargo table once, 100 columns wide
  edfc cargo --width 100

  # List the stations with a market in a system
  edfc stations Shinrarta Dezhra

  # Show what two markets buy
  edfc buys 128666762 3228342528

  # Use another journal directory
  edfc --journal-dir /mnt/games/journal`
