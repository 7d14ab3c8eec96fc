package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/application/services"
	"github.com/vsinha/cfptrace/pkg/domain/entities"
	"github.com/vsinha/cfptrace/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "example"})

	// Create repositories
	partsRepo := memory.NewPartsRepository(1)
	plantRepo := memory.NewPlantRepository(1)
	cfpRepo := memory.NewCfpRepository()

	plant := entities.Plant{PlantID: uuid.New(), PlantName: "Osaka Works", OpenPlantID: "OPN-001"}
	plantRepo.AddPlant(plant)

	// A battery pack made of 12 cells and one housing
	pack := entities.Part{TraceID: uuid.New(), PartsName: "PACK", SupportPartsName: "P-100", PlantID: plant.PlantID}
	cell := entities.Part{TraceID: uuid.New(), PartsName: "CELL", SupportPartsName: "C-200", PlantID: plant.PlantID,
		AmountRequired: amount("12"), AmountRequiredUnit: "unit"}
	housing := entities.Part{TraceID: uuid.New(), PartsName: "HOUSING", SupportPartsName: "H-300", PlantID: plant.PlantID,
		AmountRequired: amount("1"), AmountRequiredUnit: "unit"}

	addCfp(cfpRepo, pack.TraceID, "35.2", "12.75", "0", "0", "2.1")
	addCfp(cfpRepo, cell.TraceID, "4.12345", "1.5", "0.8", "0.25", "1.4")
	addCfp(cfpRepo, housing.TraceID, "9.5", "3", "1.25", "0.5", "2.6")

	service := services.NewCfpService(partsRepo, plantRepo, cfpRepo, logger)

	// A structure listing the same cell twice is rejected
	duplicated := &entities.PartsStructure{Parent: pack, Children: []entities.Part{cell, cell}}
	var validationErr *services.ValidationError
	if err := service.RegisterPartsStructure(ctx, duplicated); errors.As(err, &validationErr) {
		fmt.Println("Rejected structure:")
		for _, message := range validationErr.Messages {
			fmt.Printf("  %s\n", message)
		}
		fmt.Println()
	}

	structure := &entities.PartsStructure{Parent: pack, Children: []entities.Part{cell, housing}}
	if err := service.RegisterPartsStructure(ctx, structure); err != nil {
		fmt.Printf("Registration failed: %v\n", err)
		return
	}

	summary, err := service.Summarize(ctx, pack.TraceID)
	if err != nil {
		fmt.Printf("Summarize failed: %v\n", err)
		return
	}

	fmt.Printf("CFP of %s\n", summary.PartsName)
	for _, row := range summary.Rows {
		fmt.Printf("  %-8s %-8s pre %-10s main %-10s\n", row.Role, row.PartsName, row.Display.PreEmission, row.Display.MainEmission)
	}
	fmt.Printf("  sum: pre %s, main %s, total %s (exact %s)\n",
		summary.Display.PreEmission, summary.Display.MainEmission, summary.Display.Total, summary.Total)
	fmt.Printf("  pre DQR:  TeR %s TiR %s GeR %s -> %s\n",
		summary.Dqr.PreEmission.TeR, summary.Dqr.PreEmission.TiR, summary.Dqr.PreEmission.GeR, summary.Dqr.PreEmission.Dqr)
	fmt.Printf("  main DQR: TeR %s TiR %s GeR %s -> %s\n",
		summary.Dqr.MainEmission.TeR, summary.Dqr.MainEmission.TiR, summary.Dqr.MainEmission.GeR, summary.Dqr.MainEmission.Dqr)
}

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// addCfp registers the four CFP records of a part with one DQR value on every axis
func addCfp(repo *memory.CfpRepository, traceID uuid.UUID, preProduction, mainProduction, preComponent, mainComponent, dqr string) {
	value := entities.DqrValue{TeR: amount(dqr), TiR: amount(dqr), GeR: amount(dqr)}
	for _, r := range []struct {
		cfpType entities.CfpType
		ghg     string
		dqrType entities.DqrType
		dqr     entities.DqrValue
	}{
		{entities.PreProduction, preProduction, entities.PreProcessing, value},
		{entities.MainProduction, mainProduction, entities.MainProcessing, value},
		{entities.PreComponent, preComponent, "", entities.DqrValue{}},
		{entities.MainComponent, mainComponent, "", entities.DqrValue{}},
	} {
		repo.AddCfpRecord(entities.CfpRecord{
			CfpID:         uuid.New(),
			TraceID:       traceID,
			CfpType:       r.cfpType,
			GhgEmission:   amount(r.ghg),
			EmissionsUnit: "kgCO2e/unit",
			DqrType:       r.dqrType,
			DqrValue:      r.dqr,
		})
	}
}
