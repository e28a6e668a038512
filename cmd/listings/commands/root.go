// Package commands implements the listings command line interface.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/config"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/infrastructure"
)

// session is the state shared by every subcommand once the root command's
// pre-run has loaded the configuration.
type session struct {
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the listings command tree.
func NewRootCommand() *cobra.Command {
	rt := &session{}

	root := &cobra.Command{
		Use:   "listings",
		Short: "Analyze a boat listings inventory export",
		Long: `Active Listings Analyzer

Reads a CSV or XLSX export of active boat listings, groups the listings into
ten price bands, projects BT and YW membership revenue per band and flags
listings with data quality problems.

Examples:
  listings analyze inventory.csv
  listings analyze inventory.xlsx --export --csv-dir out
  listings analyze inventory.csv --variant basic --format json
  listings serve --port 9090`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&rt.configFile, "config", "", "config file (default is $"+config.EnvConfigFile+" or "+config.DefaultConfigFile+")")
	root.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "log level override (debug|info|warn|error)")

	root.AddCommand(
		newAnalyzeCommand(rt),
		newServeCommand(rt),
		newVersionCommand(),
	)
	return root
}

func (rt *session) init(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if rt.configFile != "" {
		cfg, err = config.LoadFile(rt.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if rt.logLevel != "" {
		cfg.Logging.Level = rt.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	rt.cfg = cfg
	rt.logger = logger
	return nil
}
