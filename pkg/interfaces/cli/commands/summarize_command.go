package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vsinha/cfptrace/pkg/application/services"
	"github.com/vsinha/cfptrace/pkg/infrastructure/config"
	"github.com/vsinha/cfptrace/pkg/interfaces/cli/output"
)

// summarizeOptions holds the flags of the summarize command. Unset flags
// fall back to configuration.
type summarizeOptions struct {
	scenarioDir string
	format      string
	outputDir   string
	precision   int32
}

func newSummarizeCommand(a *app) *cobra.Command {
	opts := &summarizeOptions{}

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Register a parts structure and roll up its CFP and DQR values",
		Long: `Register a parts structure and roll up its CFP and DQR values.

The CFP sum weights each child's per-unit emission by its amount required;
the parent counts once. DQR axes are averaged over parent and children,
weighted by each part's emission contribution, and rounded up to five
decimal places.

Output formats: text, json, csv, xlsx. csv and xlsx need --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = a.config.Output.Format
			}
			if !cmd.Flags().Changed("output") {
				opts.outputDir = a.config.Output.Dir
			}
			if !cmd.Flags().Changed("precision") {
				opts.precision = a.config.Display.Precision
			}
			return runSummarize(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenarioDir, "scenario", "s", "", "scenario directory containing plants.csv, structure.toml or parts.csv, and cfp.csv")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json, csv, xlsx")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "output directory for results")
	cmd.Flags().Int32Var(&opts.precision, "precision", 1, "decimal places for displayed emissions")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runSummarize(cmd *cobra.Command, a *app, opts *summarizeOptions) error {
	overrides := *a.config
	overrides.Output.Format = opts.format
	overrides.Display.Precision = opts.precision
	if err := overrides.Validate(); err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	scenario, err := ResolveScenario(opts.scenarioDir)
	if err != nil {
		return err
	}

	loaded, err := loadScenario(scenario, a.logger)
	if err != nil {
		return err
	}

	service := newService(a.logger, &overrides, loaded)
	ctx := cmd.Context()

	if err := service.RegisterPartsStructure(ctx, loaded.structure); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("failed to register parts structure:\n%w", err)}
	}

	summary, err := service.Summarize(ctx, loaded.structure.Parent.TraceID)
	if err != nil {
		return fmt.Errorf("error summarizing parts structure: %w", err)
	}

	err = output.Generate(summary, output.Config{
		Format:    opts.format,
		OutputDir: opts.outputDir,
		Verbose:   a.verbose,
	}, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// newService wires a CFP service over scenario repositories
func newService(logger *log.Logger, cfg *config.Config, loaded *loadedScenario) *services.CfpService {
	return services.NewCfpServiceWithConfig(services.ServiceConfig{
		MaxChildren: cfg.Limits.MaxChildren,
		Precision:   cfg.Display.Precision,
	}, loaded.partsRepo, loaded.plantRepo, loaded.cfpRepo, logger)
}
