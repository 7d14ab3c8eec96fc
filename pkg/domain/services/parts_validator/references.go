package parts_validator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

// ReferenceResult lists parts whose references cannot be resolved
type ReferenceResult struct {
	UnknownPlants []int
	IncompleteCfp []int
	Warnings      []string
}

// HasWarnings reports whether any reference is unresolved
func (r *ReferenceResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// ValidateReferences checks that every part of a structure names a known
// plant and carries all four CFP types. Indices follow Parts() order.
func ValidateReferences(structure entities.PartsStructure, plants []entities.Plant, records []entities.CfpRecord) *ReferenceResult {
	result := &ReferenceResult{
		UnknownPlants: make([]int, 0),
		IncompleteCfp: make([]int, 0),
		Warnings:      make([]string, 0),
	}

	knownPlants := make(map[uuid.UUID]bool, len(plants))
	for _, plant := range plants {
		knownPlants[plant.PlantID] = true
	}

	cfpTypes := make(map[uuid.UUID]map[entities.CfpType]bool)
	for _, record := range records {
		if cfpTypes[record.TraceID] == nil {
			cfpTypes[record.TraceID] = make(map[entities.CfpType]bool, len(entities.CfpTypes))
		}
		cfpTypes[record.TraceID][record.CfpType] = true
	}

	for i, part := range structure.Parts() {
		label := partLabel(i)

		if !knownPlants[part.PlantID] {
			result.UnknownPlants = append(result.UnknownPlants, i)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s (%s) references unknown plant %s", label, part.PartsName, part.PlantID))
		}

		var missing []string
		for _, cfpType := range entities.CfpTypes {
			if !cfpTypes[part.TraceID][cfpType] {
				missing = append(missing, string(cfpType))
			}
		}
		if len(missing) > 0 {
			result.IncompleteCfp = append(result.IncompleteCfp, i)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s (%s) is missing CFP data for types: %s", label, part.PartsName, strings.Join(missing, ", ")))
		}
	}

	return result
}

func partLabel(index int) string {
	if index == 0 {
		return "parent part"
	}
	return fmt.Sprintf("child part %d", index)
}
