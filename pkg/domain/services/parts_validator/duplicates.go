package parts_validator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

// ValidationResult contains the results of parts structure validation
type ValidationResult struct {
	DuplicateGroups [][]int
	Errors          []string
}

// HasErrors reports whether registration must be blocked
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ValidateStructure runs the duplicate parts check over a structure
func ValidateStructure(structure entities.PartsStructure, plants []entities.Plant) *ValidationResult {
	parts := structure.Parts()
	result := &ValidationResult{
		DuplicateGroups: FindDuplicateGroups(parts),
		Errors:          make([]string, 0),
	}

	for _, group := range result.DuplicateGroups {
		result.Errors = append(result.Errors, FormatDuplicateMessage(group, parts, plants))
	}

	return result
}

// ValidateNoDuplicates returns the newline-joined duplicate messages for a
// structure. ok is false when the structure has no duplicates.
func ValidateNoDuplicates(structure entities.PartsStructure, plants []entities.Plant) (string, bool) {
	result := ValidateStructure(structure, plants)
	if !result.HasErrors() {
		return "", false
	}
	return strings.Join(result.Errors, "\n"), true
}

// FindDuplicateGroups returns the indices of parts that share the same
// (partsName, supportPartsName, plantId) key. Only keys seen at least twice
// form a group. Members are ascending and groups are ordered by the first
// index of their key.
func FindDuplicateGroups(parts []entities.Part) [][]int {
	groups := make([][]int, 0)
	// first index of a key -> position in groups
	groupOf := make(map[int]int)

	for i := range parts {
		key := parts[i].IdentityKey()
		// The earliest match is always the first occurrence of the key.
		for j := 0; j < i; j++ {
			if parts[j].IdentityKey() != key {
				continue
			}
			g, exists := groupOf[j]
			if !exists {
				g = len(groups)
				groups = append(groups, []int{j})
				groupOf[j] = g
			}
			groups[g] = append(groups[g], i)
			break
		}
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a][0] < groups[b][0]
	})

	return groups
}

// FormatDuplicateMessage describes one duplicate group: which row indices
// collide and on which parts name, support parts name and plant.
func FormatDuplicateMessage(indices []int, parts []entities.Part, plants []entities.Plant) string {
	if len(indices) == 0 {
		return ""
	}

	rows := indices
	subject := "child parts "
	if rows[0] == 0 {
		subject = "parent part and child parts "
		rows = rows[1:]
	}
	if len(rows) == 0 {
		subject = "parent part"
	}

	labels := make([]string, 0, len(rows))
	for _, index := range rows {
		labels = append(labels, strconv.Itoa(index))
	}
	message := fmt.Sprintf("%s%s are duplicated", subject, strings.Join(labels, ", "))

	if indices[0] < 0 || indices[0] >= len(parts) {
		return message
	}
	part := parts[indices[0]]

	return fmt.Sprintf("%s (parts name: %s, support parts name: %s, plant: %s)",
		message, part.PartsName, part.SupportPartsName, plantLabel(part, plants))
}

func plantLabel(part entities.Part, plants []entities.Plant) string {
	for _, plant := range plants {
		if plant.PlantID == part.PlantID {
			return fmt.Sprintf("%s (%s)", plant.PlantName, plant.OpenPlantID)
		}
	}
	return part.PlantID.String()
}
