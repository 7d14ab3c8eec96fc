package commands

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
	"github.com/vsinha/cfptrace/pkg/infrastructure/repositories/tomlfile"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Children   int    // Number of child parts
	Plants     int    // Number of plants parts are spread over
	Duplicates int    // Number of children that repeat an earlier part's identity
	OutputDir  string // Output directory for generated files
	Seed       int64  // Random seed for reproducible generation
	TOML       bool   // Write structure.toml instead of parts.csv
}

// GenerateCommand writes a synthetic scenario directory
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	logger *log.Logger
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig, logger *log.Logger) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

func newGenerateCommand(a *app) *cobra.Command {
	config := GenerateConfig{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic scenario directory",
		Long: `Generate a synthetic scenario directory with plants.csv, a parts
structure and cfp.csv. Use --duplicates to seed duplicate parts that
'cfptrace validate' will report.`,
		Example: `  cfptrace generate --output ./scenario --children 8
  cfptrace generate --output ./dup --children 5 --duplicates 2 --seed 42
  cfptrace generate --output ./toml --children 3 --toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Children > a.config.Limits.MaxChildren {
				return fmt.Errorf("--children %d exceeds limit of %d", config.Children, a.config.Limits.MaxChildren)
			}
			if err := NewGenerateCommand(config, a.logger).Execute(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scenario generated in %s\n", config.OutputDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&config.Children, "children", 5, "number of child parts")
	cmd.Flags().IntVar(&config.Plants, "plants", 2, "number of plants")
	cmd.Flags().IntVar(&config.Duplicates, "duplicates", 0, "number of children duplicating an earlier part")
	cmd.Flags().StringVarP(&config.OutputDir, "output", "o", "", "output directory for generated files")
	cmd.Flags().Int64Var(&config.Seed, "seed", 0, "random seed for reproducible generation")
	cmd.Flags().BoolVar(&config.TOML, "toml", false, "write structure.toml instead of parts.csv")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("generate canceled: %w", err)
	}

	cmd.logger.Debug("generating scenario",
		"children", cmd.config.Children,
		"plants", cmd.config.Plants,
		"duplicates", cmd.config.Duplicates,
		"output", cmd.config.OutputDir)

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	plants := cmd.generatePlants()
	if err := cmd.writePlants(plants); err != nil {
		return fmt.Errorf("failed to generate plants: %w", err)
	}

	structure := cmd.generateStructure(plants)
	writeStructure := cmd.writePartsCSV
	if cmd.config.TOML {
		writeStructure = cmd.writeStructureTOML
	}
	if err := writeStructure(structure); err != nil {
		return fmt.Errorf("failed to generate parts structure: %w", err)
	}

	if err := cmd.writeCfp(structure); err != nil {
		return fmt.Errorf("failed to generate CFP records: %w", err)
	}

	return nil
}

func (cmd *GenerateCommand) validate() error {
	switch {
	case cmd.config.OutputDir == "":
		return fmt.Errorf("output directory is required")
	case cmd.config.Children < 0:
		return fmt.Errorf("children cannot be negative, got %d", cmd.config.Children)
	case cmd.config.Plants < 1:
		return fmt.Errorf("plants must be at least 1, got %d", cmd.config.Plants)
	case cmd.config.Duplicates < 0 || cmd.config.Duplicates > cmd.config.Children:
		return fmt.Errorf("duplicates must be between 0 and %d, got %d", cmd.config.Children, cmd.config.Duplicates)
	}
	return nil
}

func (cmd *GenerateCommand) newUUID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(cmd.rand)
	if err != nil {
		return uuid.New()
	}
	return id
}

func (cmd *GenerateCommand) generatePlants() []entities.Plant {
	cities := []string{"Osaka", "Nagoya", "Sendai", "Fukuoka", "Sapporo", "Hiroshima"}
	plants := make([]entities.Plant, 0, cmd.config.Plants)
	for i := 0; i < cmd.config.Plants; i++ {
		plants = append(plants, entities.Plant{
			PlantID:     cmd.newUUID(),
			PlantName:   fmt.Sprintf("%s Works %d", cities[i%len(cities)], i/len(cities)+1),
			OpenPlantID: fmt.Sprintf("OPN-%03d", i+1),
		})
	}
	return plants
}

// generateStructure builds a parent with unique children; the last
// Duplicates children copy the identity of a random earlier part
func (cmd *GenerateCommand) generateStructure(plants []entities.Plant) *entities.PartsStructure {
	structure := &entities.PartsStructure{
		Parent: entities.Part{
			TraceID:          cmd.newUUID(),
			PartsName:        "PACK",
			SupportPartsName: "P-001",
			PlantID:          plants[0].PlantID,
		},
	}

	unique := cmd.config.Children - cmd.config.Duplicates
	for i := 0; i < cmd.config.Children; i++ {
		child := entities.Part{
			TraceID:            cmd.newUUID(),
			PartsName:          fmt.Sprintf("PART-%03d", i+1),
			SupportPartsName:   fmt.Sprintf("S-%03d", i+1),
			PlantID:            plants[cmd.rand.Intn(len(plants))].PlantID,
			AmountRequired:     decimal.NewNullDecimal(cmd.randomDecimal(1, 1000000)),
			AmountRequiredUnit: "unit",
		}

		if i >= unique {
			parts := structure.Parts()
			source := parts[cmd.rand.Intn(len(parts))]
			child.PartsName = source.PartsName
			child.SupportPartsName = source.SupportPartsName
			child.PlantID = source.PlantID
		}

		structure.Children = append(structure.Children, child)
	}

	return structure
}

// randomDecimal returns a value in [lo, hi) scaled by 1e-5
func (cmd *GenerateCommand) randomDecimal(lo, hi int64) decimal.Decimal {
	return decimal.New(lo+cmd.rand.Int63n(hi-lo), -5)
}

func (cmd *GenerateCommand) randomDqr() []string {
	axes := make([]string, 3)
	for i := range axes {
		axes[i] = decimal.New(10+cmd.rand.Int63n(21), -1).String()
	}
	return axes
}

func (cmd *GenerateCommand) writePlants(plants []entities.Plant) error {
	rows := [][]string{{"plant_id", "plant_name", "open_plant_id"}}
	for _, plant := range plants {
		rows = append(rows, []string{plant.PlantID.String(), plant.PlantName, plant.OpenPlantID})
	}
	return cmd.writeCSV(plantsFileName, rows)
}

func (cmd *GenerateCommand) writePartsCSV(structure *entities.PartsStructure) error {
	rows := [][]string{{"role", "trace_id", "parts_name", "support_parts_name", "plant_id", "amount_required", "amount_required_unit"}}
	for i, part := range structure.Parts() {
		role, amount := "child", ""
		if i == 0 {
			role = "parent"
		}
		if part.AmountRequired.Valid {
			amount = part.AmountRequired.Decimal.String()
		}
		rows = append(rows, []string{role, part.TraceID.String(), part.PartsName, part.SupportPartsName, part.PlantID.String(), amount, part.AmountRequiredUnit})
	}
	return cmd.writeCSV(partsCSVFileName, rows)
}

func (cmd *GenerateCommand) writeStructureTOML(structure *entities.PartsStructure) error {
	data, err := tomlfile.MarshalPartsStructure(structure)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cmd.config.OutputDir, structureTOMLFileName), data, 0644)
}

func (cmd *GenerateCommand) writeCfp(structure *entities.PartsStructure) error {
	rows := [][]string{{"trace_id", "cfp_type", "ghg_emission", "emissions_unit", "dqr_type", "ter", "tir", "ger"}}
	for i, part := range structure.Parts() {
		for _, cfpType := range entities.CfpTypes {
			emission := cmd.randomDecimal(0, 10000000)
			var dqrType entities.DqrType
			dqr := []string{"", "", ""}

			switch cfpType {
			case entities.PreProduction:
				dqrType, dqr = entities.PreProcessing, cmd.randomDqr()
			case entities.MainProduction:
				dqrType, dqr = entities.MainProcessing, cmd.randomDqr()
			default:
				// the parent's own component share is not part of its rollup
				if i == 0 {
					emission = decimal.Zero
				}
			}

			rows = append(rows, []string{
				part.TraceID.String(),
				string(cfpType),
				emission.String(),
				"kgCO2e/unit",
				string(dqrType),
				dqr[0], dqr[1], dqr[2],
			})
		}
	}
	return cmd.writeCSV(cfpFileName, rows)
}

func (cmd *GenerateCommand) writeCSV(name string, rows [][]string) error {
	file, err := os.Create(filepath.Join(cmd.config.OutputDir, name))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := stdcsv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
