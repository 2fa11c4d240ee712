// Package root contains the root command for the application
package root

import (
	"fmt"

	"spendly/sms-extract/internal/config"
	"spendly/sms-extract/internal/container"
	"spendly/sms-extract/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "sms-extract",
		Short: "A CLI tool to extract transactions from bank SMS notifications.",
		Long: `sms-extract reads bank and card SMS notifications (plain text, SMS Backup & Restore
XML exports or saved HTML pages) and extracts the amount, direction, merchant, date
and a suggested category of every transaction it finds.

The results can be written as JSON, YAML, CSV or a readable text report, turned into
transaction drafts, or served over HTTP with the serve command.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer == nil {
				return
			}
			if err := appContainer.Close(); err != nil {
				appContainer.GetLogger().WithError(err).Warn("Failed to release resources")
			}
		},
	}

	// SharedFlags holds the flags accessible to all commands
	SharedFlags = CommonFlags{}

	// ConfigFile is an explicit configuration file path
	ConfigFile string

	logLevel     string
	logFormat    string
	csvDelimiter string
	aiEnabled    bool

	appConfig    *config.Config
	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (stdin when empty)")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when empty)")
	flags.StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: json, yaml, csv or text (default from config)")

	flags.StringVar(&ConfigFile, "config", "", "Config file (default searches $HOME/.sms-extract, .sms-extract and .)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&csvDelimiter, "csv-delimiter", "", "CSV delimiter character")
	flags.BoolVar(&aiEnabled, "ai-enabled", false, "Enable Gemini category enrichment (needs GEMINI_API_KEY)")
}

// initialize loads the configuration, applies the flag overrides and builds
// the application container.
func initialize(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		return err
	}

	cfg, err := config.InitializeConfigFromFile(ConfigFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("csv-delimiter") {
		cfg.CSV.Delimiter = csvDelimiter
	}
	if flags.Changed("ai-enabled") {
		cfg.AI.Enabled = aiEnabled
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	appConfig = cfg
	appContainer = c
	c.GetLogger().Debug("Configuration loaded",
		logging.F("command", cmd.Name()),
		logging.F(logging.FieldFormat, cfg.Output.Format))
	return nil
}

// GetConfig returns the loaded configuration, or nil before a command ran.
func GetConfig() *config.Config {
	return appConfig
}

// GetContainer returns the application container, or nil before a command ran.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the container's logger, or a logger built from the
// environment when no container exists yet.
func GetLogger() logging.Logger {
	if appContainer != nil {
		return appContainer.GetLogger()
	}
	return logging.NewLogrusAdapter(config.GetEnv("SMSX_LOG_LEVEL", "info"), config.GetEnv("SMSX_LOG_FORMAT", "text"))
}
