package memory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
	"github.com/vsinha/cfptrace/pkg/domain/repositories"
)

func TestPlantRepository_LoadAndGet(t *testing.T) {
	repo := NewPlantRepository(2)
	osaka := &entities.Plant{PlantID: uuid.New(), PlantName: "Osaka Works", OpenPlantID: "OPN-001"}
	nagoya := &entities.Plant{PlantID: uuid.New(), PlantName: "Nagoya Works", OpenPlantID: "OPN-002"}

	if err := repo.LoadPlants([]*entities.Plant{osaka, nagoya}); err != nil {
		t.Fatalf("Failed to load plants: %v", err)
	}

	retrieved, err := repo.GetPlant(nagoya.PlantID)
	if err != nil {
		t.Fatalf("Failed to get plant: %v", err)
	}
	if retrieved.PlantName != "Nagoya Works" {
		t.Errorf("Expected plant name Nagoya Works, got %s", retrieved.PlantName)
	}

	all, _ := repo.GetAllPlants()
	if len(all) != 2 || all[0].PlantID != osaka.PlantID {
		t.Errorf("Expected plants in load order, got %v", all)
	}

	_, err = repo.GetPlant(uuid.New())
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown plant, got %v", err)
	}
}

func TestPlantRepository_AddPlantReplaces(t *testing.T) {
	repo := NewPlantRepository(1)
	id := uuid.New()
	repo.AddPlant(entities.Plant{PlantID: id, PlantName: "Old"})
	repo.AddPlant(entities.Plant{PlantID: id, PlantName: "New"})

	all, _ := repo.GetAllPlants()
	if len(all) != 1 {
		t.Fatalf("Expected 1 plant after replacement, got %d", len(all))
	}
	if all[0].PlantName != "New" {
		t.Errorf("Expected replaced plant name New, got %s", all[0].PlantName)
	}
}

func TestPartsRepository_SaveAndGet(t *testing.T) {
	repo := NewPartsRepository(1)
	parentID := uuid.New()
	structure := &entities.PartsStructure{
		Parent: entities.Part{TraceID: parentID, PartsName: "PACK"},
		Children: []entities.Part{
			{TraceID: uuid.New(), PartsName: "CELL", AmountRequired: decimal.NewNullDecimal(decimal.NewFromInt(12))},
		},
	}

	if err := repo.SavePartsStructure(structure); err != nil {
		t.Fatalf("Failed to save structure: %v", err)
	}

	// mutating the caller's slice must not leak into the repository
	structure.Children[0].PartsName = "CHANGED"

	retrieved, err := repo.GetPartsStructure(parentID)
	if err != nil {
		t.Fatalf("Failed to get structure: %v", err)
	}
	if retrieved.Children[0].PartsName != "CELL" {
		t.Errorf("Expected stored child name CELL, got %s", retrieved.Children[0].PartsName)
	}

	all, _ := repo.GetAllPartsStructures()
	if len(all) != 1 {
		t.Errorf("Expected 1 structure, got %d", len(all))
	}
}

func TestPartsRepository_Errors(t *testing.T) {
	repo := NewPartsRepository(0)

	if err := repo.SavePartsStructure(nil); err == nil {
		t.Error("Expected error for nil structure")
	}
	if err := repo.SavePartsStructure(&entities.PartsStructure{Parent: entities.Part{PartsName: "PACK"}}); err == nil {
		t.Error("Expected error for structure without parent trace id")
	}
	if _, err := repo.GetPartsStructure(uuid.New()); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCfpRepository_GetByTraceID(t *testing.T) {
	repo := NewCfpRepository()
	cell := uuid.New()
	other := uuid.New()

	err := repo.LoadCfpRecords([]*entities.CfpRecord{
		{TraceID: cell, CfpType: entities.PreProduction},
		{TraceID: other, CfpType: entities.PreProduction},
		{TraceID: cell, CfpType: entities.MainProduction},
	})
	if err != nil {
		t.Fatalf("Failed to load records: %v", err)
	}

	records, _ := repo.GetCfpRecords(cell)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].CfpType != entities.PreProduction || records[1].CfpType != entities.MainProduction {
		t.Errorf("Expected records in load order, got %v", records)
	}

	none, err := repo.GetCfpRecords(uuid.New())
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("Expected empty non-nil result for unknown part, got %v (err %v)", none, err)
	}
}
