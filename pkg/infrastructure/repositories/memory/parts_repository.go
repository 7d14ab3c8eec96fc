package memory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
	"github.com/vsinha/cfptrace/pkg/domain/repositories"
)

// PartsRepository provides in-memory storage of parts structures keyed by
// the parent's trace id
type PartsRepository struct {
	structures []entities.PartsStructure
	parentsMap map[uuid.UUID]int
}

// NewPartsRepository creates a new in-memory parts repository
func NewPartsRepository(expectedStructures int) *PartsRepository {
	return &PartsRepository{
		structures: make([]entities.PartsStructure, 0, expectedStructures),
		parentsMap: make(map[uuid.UUID]int, expectedStructures),
	}
}

// Verify interface compliance
var _ repositories.PartsRepository = (*PartsRepository)(nil)

// SavePartsStructure stores a structure, replacing an earlier one with the
// same parent trace id
func (r *PartsRepository) SavePartsStructure(structure *entities.PartsStructure) error {
	if structure == nil {
		return fmt.Errorf("parts structure cannot be nil")
	}
	if structure.Parent.TraceID == uuid.Nil {
		return fmt.Errorf("parent trace id cannot be empty")
	}

	stored := entities.PartsStructure{
		Parent:   structure.Parent,
		Children: append([]entities.Part(nil), structure.Children...),
	}
	if index, exists := r.parentsMap[stored.Parent.TraceID]; exists {
		r.structures[index] = stored
		return nil
	}
	r.parentsMap[stored.Parent.TraceID] = len(r.structures)
	r.structures = append(r.structures, stored)
	return nil
}

// GetPartsStructure returns the structure whose parent has the given trace id
func (r *PartsRepository) GetPartsStructure(parentTraceID uuid.UUID) (*entities.PartsStructure, error) {
	index, exists := r.parentsMap[parentTraceID]
	if !exists {
		return nil, fmt.Errorf("parts structure %s: %w", parentTraceID, repositories.ErrNotFound)
	}
	structure := r.structures[index]
	structure.Children = append([]entities.Part(nil), structure.Children...)
	return &structure, nil
}

// GetAllPartsStructures returns all stored structures in save order
func (r *PartsRepository) GetAllPartsStructures() ([]*entities.PartsStructure, error) {
	structures := make([]*entities.PartsStructure, 0, len(r.structures))
	for i := range r.structures {
		structure := r.structures[i]
		structures = append(structures, &structure)
	}
	return structures, nil
}
