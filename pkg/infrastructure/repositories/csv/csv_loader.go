package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

// Loader handles loading traceability data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

var (
	plantsHeader = []string{"plant_id", "plant_name", "open_plant_id"}
	partsHeader  = []string{"role", "trace_id", "parts_name", "support_parts_name", "plant_id", "amount_required", "amount_required_unit"}
	cfpHeader    = []string{"trace_id", "cfp_type", "ghg_emission", "emissions_unit", "dqr_type", "ter", "tir", "ger"}
)

// LoadPlants loads plants from a CSV file
func (l *Loader) LoadPlants(filename string) ([]*entities.Plant, error) {
	records, err := readRecords(filename, "plants", plantsHeader)
	if err != nil {
		return nil, err
	}

	var plants []*entities.Plant
	for i, record := range records {
		plantID, err := parseUUID("plant_id", record[0])
		if err != nil {
			return nil, fmt.Errorf("plants CSV row %d: %w", i+2, err)
		}

		plant, err := entities.NewPlant(plantID, record[1], record[2])
		if err != nil {
			return nil, fmt.Errorf("plants CSV row %d: %w", i+2, err)
		}

		plants = append(plants, plant)
	}

	return plants, nil
}

// LoadPartsStructure loads a parts structure from a CSV file. The file holds
// exactly one row with role "parent" and any number of "child" rows.
func (l *Loader) LoadPartsStructure(filename string) (*entities.PartsStructure, error) {
	records, err := readRecords(filename, "parts", partsHeader)
	if err != nil {
		return nil, err
	}

	var (
		parent    *entities.Part
		children  []entities.Part
		parentRow int
	)
	for i, record := range records {
		part, err := parsePart(record)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: %w", i+2, err)
		}

		switch strings.ToLower(strings.TrimSpace(record[0])) {
		case "parent":
			if parent != nil {
				return nil, fmt.Errorf("parts CSV row %d: second parent row (first at row %d)", i+2, parentRow)
			}
			parent = &part
			parentRow = i + 2
		case "child":
			children = append(children, part)
		default:
			return nil, fmt.Errorf("parts CSV row %d: invalid role: %s (expected 'parent' or 'child')", i+2, record[0])
		}
	}

	if parent == nil {
		return nil, fmt.Errorf("parts CSV must contain a parent row")
	}

	return &entities.PartsStructure{
		Parent:   *parent,
		Children: children,
	}, nil
}

// LoadCfpRecords loads CFP records from a CSV file
func (l *Loader) LoadCfpRecords(filename string) ([]*entities.CfpRecord, error) {
	records, err := readRecords(filename, "cfp", cfpHeader)
	if err != nil {
		return nil, err
	}

	var cfpRecords []*entities.CfpRecord
	for i, record := range records {
		cfpRecord, err := parseCfpRecord(record)
		if err != nil {
			return nil, fmt.Errorf("cfp CSV row %d: %w", i+2, err)
		}
		cfpRecords = append(cfpRecords, &cfpRecord)
	}

	return cfpRecords, nil
}

// readRecords opens a CSV file, checks its header and returns the data rows
func readRecords(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parsePart(record []string) (entities.Part, error) {
	traceID, err := parseUUID("trace_id", record[1])
	if err != nil {
		return entities.Part{}, err
	}

	plantID, err := parseUUID("plant_id", record[4])
	if err != nil {
		return entities.Part{}, err
	}

	amountRequired, err := parseOptionalDecimal("amount_required", record[5])
	if err != nil {
		return entities.Part{}, err
	}

	return entities.Part{
		TraceID:            traceID,
		PartsName:          record[2],
		SupportPartsName:   record[3],
		PlantID:            plantID,
		AmountRequired:     amountRequired,
		AmountRequiredUnit: record[6],
	}, nil
}

func parseCfpRecord(record []string) (entities.CfpRecord, error) {
	traceID, err := parseUUID("trace_id", record[0])
	if err != nil {
		return entities.CfpRecord{}, err
	}

	cfpType, err := entities.ParseCfpType(strings.TrimSpace(record[1]))
	if err != nil {
		return entities.CfpRecord{}, err
	}

	ghgEmission, err := parseOptionalDecimal("ghg_emission", record[2])
	if err != nil {
		return entities.CfpRecord{}, err
	}

	dqrType, err := entities.ParseDqrType(strings.TrimSpace(record[4]))
	if err != nil {
		return entities.CfpRecord{}, err
	}

	var dqr entities.DqrValue
	for _, field := range []struct {
		name   string
		raw    string
		target *decimal.NullDecimal
	}{
		{"ter", record[5], &dqr.TeR},
		{"tir", record[6], &dqr.TiR},
		{"ger", record[7], &dqr.GeR},
	} {
		value, err := parseOptionalDecimal(field.name, field.raw)
		if err != nil {
			return entities.CfpRecord{}, err
		}
		*field.target = value
	}

	return entities.CfpRecord{
		CfpID:         uuid.New(),
		TraceID:       traceID,
		CfpType:       cfpType,
		GhgEmission:   ghgEmission,
		EmissionsUnit: record[3],
		DqrType:       dqrType,
		DqrValue:      dqr,
	}, nil
}

func parseUUID(column, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %s", column, s)
	}
	return id, nil
}

// parseOptionalDecimal parses a decimal cell. An empty cell is a null value.
func parseOptionalDecimal(column, s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid %s: %s", column, s)
	}
	return decimal.NewNullDecimal(d), nil
}
