package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ledgerlens-dev/ledgerlens/internal/buildinfo"
	"github.com/ledgerlens-dev/ledgerlens/internal/config"
	"github.com/ledgerlens-dev/ledgerlens/internal/format"
	"github.com/ledgerlens-dev/ledgerlens/internal/logger"
	"github.com/ledgerlens-dev/ledgerlens/internal/pipeline"
)

// Output formats accepted by --format.
const (
	outputText = "text"
	outputJSON = "json"
)

// app holds the state shared by all subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	output     string

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "ledgerlens",
		Short:   "Turn bank statement exports into a categorized ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./"+config.FileName+" if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.output, "format", outputText, "output format: text or json")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newSummaryCommand(a))
	rootCmd.AddCommand(newLedgerCommand(a))
	rootCmd.AddCommand(newFilterCommand(a))
	rootCmd.AddCommand(newCounterpartiesCommand(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.output != outputText && a.output != outputJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", a.output, outputText, outputJSON)
	}

	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	levelName := cfg.Logging.Level
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	a.log = logger.ForFormat(cfg.Logging.Format, level)
	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))
	return nil
}

// loadConfig reads an explicit config path, else ./ledgerlens.yaml when it
// exists, else the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(config.FileName)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func (a *app) pipeline() *pipeline.Pipeline {
	return pipeline.New(a.cfg, pipeline.WithLogger(a.log))
}

func (a *app) formatter() (*format.Formatter, error) {
	return format.New(a.cfg.Format)
}

func (a *app) json() bool {
	return a.output == outputJSON
}
