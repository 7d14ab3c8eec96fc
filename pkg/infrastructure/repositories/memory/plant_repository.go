package memory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
	"github.com/vsinha/cfptrace/pkg/domain/repositories"
)

// PlantRepository provides in-memory plant storage
type PlantRepository struct {
	plants    []entities.Plant
	plantsMap map[uuid.UUID]int
}

// NewPlantRepository creates a new in-memory plant repository
func NewPlantRepository(expectedPlants int) *PlantRepository {
	return &PlantRepository{
		plants:    make([]entities.Plant, 0, expectedPlants),
		plantsMap: make(map[uuid.UUID]int, expectedPlants),
	}
}

// Verify interface compliance
var _ repositories.PlantRepository = (*PlantRepository)(nil)

// LoadPlants loads plants into the repository
func (r *PlantRepository) LoadPlants(plants []*entities.Plant) error {
	for _, plant := range plants {
		r.AddPlant(*plant)
	}
	return nil
}

// AddPlant adds a plant, replacing any plant with the same id
func (r *PlantRepository) AddPlant(plant entities.Plant) {
	if index, exists := r.plantsMap[plant.PlantID]; exists {
		r.plants[index] = plant
		return
	}
	r.plantsMap[plant.PlantID] = len(r.plants)
	r.plants = append(r.plants, plant)
}

// GetPlant returns a plant by id
func (r *PlantRepository) GetPlant(plantID uuid.UUID) (*entities.Plant, error) {
	index, exists := r.plantsMap[plantID]
	if !exists {
		return nil, fmt.Errorf("plant %s: %w", plantID, repositories.ErrNotFound)
	}
	plant := r.plants[index]
	return &plant, nil
}

// GetAllPlants returns all plants in load order
func (r *PlantRepository) GetAllPlants() ([]entities.Plant, error) {
	plants := make([]entities.Plant, len(r.plants))
	copy(plants, r.plants)
	return plants, nil
}
