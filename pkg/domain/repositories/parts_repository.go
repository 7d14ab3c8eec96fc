package repositories

import (
	"errors"

	"github.com/google/uuid"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// PartsRepository provides access to registered parts structures
type PartsRepository interface {
	GetPartsStructure(parentTraceID uuid.UUID) (*entities.PartsStructure, error)
	GetAllPartsStructures() ([]*entities.PartsStructure, error)
	SavePartsStructure(structure *entities.PartsStructure) error
}
