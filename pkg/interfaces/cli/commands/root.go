// Package commands contains the cfptrace CLI commands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vsinha/cfptrace/pkg/infrastructure/config"
	"github.com/vsinha/cfptrace/pkg/interfaces/cli/output"
)

// Version is set via -ldflags.
var Version = "dev"

// app carries state shared by every command of one invocation
type app struct {
	cfgFile string
	verbose bool

	config     *config.Config
	configPath string
	logger     *log.Logger
}

// NewRootCommand builds the cfptrace command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "cfptrace",
		Short: "Carbon footprint rollup for battery parts structures",
		Long: output.TitleStyle.Render("cfptrace") + output.SubtitleStyle.Render(" - carbon footprint rollup for battery parts structures") + `

cfptrace reads a parts structure (one parent part and its child parts),
checks it for duplicate parts and rolls up the CFP and DQR values of
every part into totals for the parent.

` + output.SubtitleStyle.Render("Scenario directory:") + `
  plants.csv        plant master data
  structure.toml    parts structure (or parts.csv)
  cfp.csv           CFP records, four per part

` + output.SubtitleStyle.Render("Examples:") + `
  cfptrace generate --output ./scenario --children 8
  cfptrace validate --scenario ./scenario
  cfptrace summarize --scenario ./scenario --format xlsx --output ./out
  cfptrace config show`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./cfptrace.toml or $XDG_CONFIG_HOME/cfptrace/cfptrace.toml)")

	rootCmd.AddCommand(newValidateCommand(a))
	rootCmd.AddCommand(newSummarizeCommand(a))
	rootCmd.AddCommand(newGenerateCommand(a))
	rootCmd.AddCommand(newConfigCommand(a))

	return rootCmd
}

// Execute runs the CLI and exits with the code carried by an ExitError.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// init loads configuration and builds the logger
func (a *app) init() error {
	cfg, path, err := config.Load(a.cfgFile)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("invalid log level: %w", err)}
	}
	if a.verbose {
		level = log.DebugLevel
	}

	a.config = cfg
	a.configPath = path
	a.logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cfptrace",
		Level:  level,
	})
	if path != "" {
		a.logger.Debug("config loaded", "path", path)
	}
	return nil
}
