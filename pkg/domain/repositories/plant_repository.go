package repositories

import (
	"github.com/google/uuid"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

// PlantRepository provides access to plant master data
type PlantRepository interface {
	GetPlant(plantID uuid.UUID) (*entities.Plant, error)
	GetAllPlants() ([]entities.Plant, error)
	LoadPlants(plants []*entities.Plant) error
}
