package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
	"github.com/vsinha/cfptrace/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/cfptrace/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/cfptrace/pkg/infrastructure/repositories/tomlfile"
)

const (
	plantsFileName        = "plants.csv"
	structureTOMLFileName = "structure.toml"
	partsCSVFileName      = "parts.csv"
	cfpFileName           = "cfp.csv"
)

// Scenario names the input files of one scenario directory
type Scenario struct {
	Dir           string
	PlantsFile    string
	StructureFile string
	CfpFile       string
}

// ResolveScenario locates the input files in dir. A structure.toml takes
// precedence over parts.csv.
func ResolveScenario(dir string) (*Scenario, error) {
	if dir == "" {
		return nil, fmt.Errorf("must specify a --scenario directory")
	}

	scenario := &Scenario{
		Dir:        dir,
		PlantsFile: filepath.Join(dir, plantsFileName),
		CfpFile:    filepath.Join(dir, cfpFileName),
	}

	tomlPath := filepath.Join(dir, structureTOMLFileName)
	csvPath := filepath.Join(dir, partsCSVFileName)
	switch {
	case fileExists(tomlPath):
		scenario.StructureFile = tomlPath
	case fileExists(csvPath):
		scenario.StructureFile = csvPath
	default:
		return nil, fmt.Errorf("structure file not found: expected %s or %s", tomlPath, csvPath)
	}

	for name, path := range map[string]string{"Plants": scenario.PlantsFile, "CFP": scenario.CfpFile} {
		if !fileExists(path) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return scenario, nil
}

// loadedScenario holds repositories populated from a scenario directory.
// The structure is not registered yet.
type loadedScenario struct {
	partsRepo *memory.PartsRepository
	plantRepo *memory.PlantRepository
	cfpRepo   *memory.CfpRepository
	structure *entities.PartsStructure
}

func loadScenario(scenario *Scenario, logger *log.Logger) (*loadedScenario, error) {
	loader := csv.NewLoader()

	plants, err := loader.LoadPlants(scenario.PlantsFile)
	if err != nil {
		return nil, fmt.Errorf("error loading plants: %w", err)
	}

	var structure *entities.PartsStructure
	if filepath.Ext(scenario.StructureFile) == ".toml" {
		structure, err = tomlfile.LoadPartsStructure(scenario.StructureFile)
	} else {
		structure, err = loader.LoadPartsStructure(scenario.StructureFile)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading parts structure: %w", err)
	}

	records, err := loader.LoadCfpRecords(scenario.CfpFile)
	if err != nil {
		return nil, fmt.Errorf("error loading CFP records: %w", err)
	}

	logger.Debug("scenario loaded",
		"dir", scenario.Dir,
		"structure", filepath.Base(scenario.StructureFile),
		"plants", len(plants),
		"children", len(structure.Children),
		"cfpRecords", len(records))

	plantRepo := memory.NewPlantRepository(len(plants))
	if err := plantRepo.LoadPlants(plants); err != nil {
		return nil, fmt.Errorf("failed to load plants into repository: %w", err)
	}

	cfpRepo := memory.NewCfpRepository()
	if err := cfpRepo.LoadCfpRecords(records); err != nil {
		return nil, fmt.Errorf("failed to load CFP records into repository: %w", err)
	}

	return &loadedScenario{
		partsRepo: memory.NewPartsRepository(1),
		plantRepo: plantRepo,
		cfpRepo:   cfpRepo,
		structure: structure,
	}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
