package testing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
	"github.com/vsinha/cfptrace/pkg/infrastructure/repositories/memory"
)

// Fixed identifiers of the battery pack scenario
var (
	OsakaPlantID = uuid.MustParse("7bb1c5a2-0c1f-4d0b-9a6e-3c2d41f0a001")
	PackTraceID  = uuid.MustParse("2f7a3c4e-1111-4c3b-8b0e-000000000001")
	CellTraceID  = uuid.MustParse("2f7a3c4e-1111-4c3b-8b0e-000000000002")
	CaseTraceID  = uuid.MustParse("2f7a3c4e-1111-4c3b-8b0e-000000000003")
)

// Amount parses a decimal literal into a non-null value, panicking on bad input
func Amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// Dqr builds a DQR value from three decimal literals
func Dqr(ter, tir, ger string) entities.DqrValue {
	return entities.DqrValue{TeR: Amount(ter), TiR: Amount(tir), GeR: Amount(ger)}
}

// BuildCfpRecords builds the four CFP records of a part
func BuildCfpRecords(traceID uuid.UUID, preProduction, mainProduction, preComponent, mainComponent string, preDqr, mainDqr entities.DqrValue) []*entities.CfpRecord {
	record := func(cfpType entities.CfpType, ghg string, dqrType entities.DqrType, dqr entities.DqrValue) *entities.CfpRecord {
		return &entities.CfpRecord{
			CfpID:         uuid.New(),
			TraceID:       traceID,
			CfpType:       cfpType,
			GhgEmission:   Amount(ghg),
			EmissionsUnit: "kgCO2e/unit",
			DqrType:       dqrType,
			DqrValue:      dqr,
		}
	}
	return []*entities.CfpRecord{
		record(entities.PreProduction, preProduction, entities.PreProcessing, preDqr),
		record(entities.MainProduction, mainProduction, entities.MainProcessing, mainDqr),
		record(entities.PreComponent, preComponent, "", entities.DqrValue{}),
		record(entities.MainComponent, mainComponent, "", entities.DqrValue{}),
	}
}

// BuildBatteryPackTestData builds a pack with two children: 2 cells and half a
// case. The structure is returned unsaved so callers can register it.
//
// Expected rollup: pre 16, main 8, total 24; pre DQR TeR 1.875, TiR 2,
// GeR 2.125, dqr 2; main DQR 1 on every axis.
func BuildBatteryPackTestData() (*memory.PartsRepository, *memory.PlantRepository, *memory.CfpRepository, *entities.PartsStructure) {
	partsRepo := memory.NewPartsRepository(1)
	plantRepo := memory.NewPlantRepository(1)
	cfpRepo := memory.NewCfpRepository()

	plantRepo.AddPlant(entities.Plant{
		PlantID:     OsakaPlantID,
		PlantName:   "Osaka Works",
		OpenPlantID: "OPN-001",
	})

	structure := &entities.PartsStructure{
		Parent: entities.Part{
			TraceID:          PackTraceID,
			PartsName:        "PACK",
			SupportPartsName: "P-1",
			PlantID:          OsakaPlantID,
		},
		Children: []entities.Part{
			{
				TraceID:            CellTraceID,
				PartsName:          "CELL",
				SupportPartsName:   "C-1",
				PlantID:            OsakaPlantID,
				AmountRequired:     Amount("2"),
				AmountRequiredUnit: "unit",
			},
			{
				TraceID:            CaseTraceID,
				PartsName:          "CASE",
				SupportPartsName:   "K-1",
				PlantID:            OsakaPlantID,
				AmountRequired:     Amount("0.5"),
				AmountRequiredUnit: "unit",
			},
		},
	}

	var records []*entities.CfpRecord
	records = append(records, BuildCfpRecords(PackTraceID, "10", "5", "0", "0", Dqr("2", "2", "2"), Dqr("1", "1", "1"))...)
	records = append(records, BuildCfpRecords(CellTraceID, "1.5", "0.25", "0.5", "0.75", Dqr("1", "2", "3"), Dqr("1", "1", "1"))...)
	records = append(records, BuildCfpRecords(CaseTraceID, "4", "2", "0", "0", Dqr("3", "2", "1"), Dqr("1", "1", "1"))...)
	if err := cfpRepo.LoadCfpRecords(records); err != nil {
		panic(err)
	}

	return partsRepo, plantRepo, cfpRepo, structure
}
