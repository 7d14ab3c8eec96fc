package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vsinha/cfptrace/pkg/infrastructure/config"
	"github.com/vsinha/cfptrace/pkg/interfaces/cli/output"
)

func newConfigCommand(a *app) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect cfptrace configuration",
		Long: `Inspect cfptrace configuration.

Settings are read from cfptrace.toml, cfptrace.yaml or cfptrace.json in the
working directory or $XDG_CONFIG_HOME/cfptrace, and can be overridden with
environment variables such as CFPTRACE_OUTPUT_FORMAT=json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var asJSON bool
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				data, err := json.MarshalIndent(a.config, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			showConfig(cmd.OutOrStdout(), a.config, a.configPath)
			return nil
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print configuration as JSON")
	cfgCmd.AddCommand(showCmd)

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	keyStyle := output.KeyStyle
	valueStyle := output.SuccessStyle

	fmt.Fprintln(w, output.TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), output.SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	outputDir := cfg.Output.Dir
	if outputDir == "" {
		outputDir = "(stdout)"
	}

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(w, "  level: %s\n", valueStyle.Render(cfg.Log.Level))
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(w, "  format: %s\n", valueStyle.Render(cfg.Output.Format))
	fmt.Fprintf(w, "  dir: %s\n", valueStyle.Render(outputDir))
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("display"))
	fmt.Fprintf(w, "  precision: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.Display.Precision)))
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("limits"))
	fmt.Fprintf(w, "  max_children: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.Limits.MaxChildren)))
}
