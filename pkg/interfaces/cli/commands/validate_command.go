package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/cfptrace/pkg/application/services"
	"github.com/vsinha/cfptrace/pkg/interfaces/cli/output"
)

func newValidateCommand(a *app) *cobra.Command {
	var scenarioDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a parts structure for duplicate parts and invalid input",
		Long: `Check a parts structure before registration.

Every part is checked for required fields and numeric ranges, and the
parent and children are checked for duplicates: two parts with the same
parts name, support parts name and plant cannot appear in one structure.
Exits with status 1 when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := ResolveScenario(scenarioDir)
			if err != nil {
				return err
			}

			loaded, err := loadScenario(scenario, a.logger)
			if err != nil {
				return err
			}

			service := newService(a.logger, a.config, loaded)

			out := cmd.OutOrStdout()
			err = service.CheckPartsStructure(cmd.Context(), loaded.structure)

			var validationErr *services.ValidationError
			if errors.As(err, &validationErr) {
				fmt.Fprintln(out, output.ErrorStyle.Render(fmt.Sprintf("✗ %s: %d problem(s) found", loaded.structure.Parent.PartsName, len(validationErr.Messages))))
				for _, message := range validationErr.Messages {
					fmt.Fprintf(out, "  - %s\n", message)
				}
				return &ExitError{Code: 1, Err: fmt.Errorf("parts structure %s is invalid", loaded.structure.Parent.TraceID)}
			}
			if err != nil {
				return err
			}

			warnings, err := service.CheckReferences(cmd.Context(), loaded.structure)
			if err != nil {
				return err
			}
			for _, warning := range warnings {
				fmt.Fprintf(out, "%s %s\n", output.WarningStyle.Render("!"), warning)
			}

			fmt.Fprintf(out, "%s %s with %d child part(s) is valid\n",
				output.SuccessStyle.Render("✓"),
				loaded.structure.Parent.PartsName,
				len(loaded.structure.Children))
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioDir, "scenario", "s", "", "scenario directory containing plants.csv, structure.toml or parts.csv, and cfp.csv")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}
