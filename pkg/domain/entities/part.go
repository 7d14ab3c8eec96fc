package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMaxChildren is the number of child parts a structure may carry when
// no explicit limit is configured.
const DefaultMaxChildren = 50

// Plant represents a production site that parts are attributed to
type Plant struct {
	PlantID     uuid.UUID
	PlantName   string
	OpenPlantID string
}

// NewPlant creates a validated Plant
func NewPlant(plantID uuid.UUID, plantName, openPlantID string) (*Plant, error) {
	if plantID == uuid.Nil {
		return nil, fmt.Errorf("plant id cannot be empty")
	}
	if plantName == "" {
		return nil, fmt.Errorf("plant name cannot be empty")
	}

	return &Plant{
		PlantID:     plantID,
		PlantName:   plantName,
		OpenPlantID: openPlantID,
	}, nil
}

// Part is one row of a parts structure. The parent part carries no
// AmountRequired; a child carries the quantity consumed per unit of parent.
type Part struct {
	TraceID            uuid.UUID
	PartsName          string
	SupportPartsName   string
	PlantID            uuid.UUID
	AmountRequired     decimal.NullDecimal
	AmountRequiredUnit string
	TerminatedFlag     bool
}

// PartIdentity is the key two parts collide on
type PartIdentity struct {
	PartsName        string
	SupportPartsName string
	PlantID          uuid.UUID
}

// IdentityKey returns the (partsName, supportPartsName, plantId) triple
func (p Part) IdentityKey() PartIdentity {
	return PartIdentity{
		PartsName:        p.PartsName,
		SupportPartsName: p.SupportPartsName,
		PlantID:          p.PlantID,
	}
}

// Multiplier returns AmountRequired, or one when the part has none (the parent)
func (p Part) Multiplier() decimal.Decimal {
	if !p.AmountRequired.Valid {
		return decimal.NewFromInt(1)
	}
	return p.AmountRequired.Decimal
}

// PartsStructure is a parent part together with its direct children
type PartsStructure struct {
	Parent   Part
	Children []Part
}

// NewPartsStructure creates a validated PartsStructure.
// maxChildren <= 0 falls back to DefaultMaxChildren.
func NewPartsStructure(parent Part, children []Part, maxChildren int) (*PartsStructure, error) {
	if maxChildren <= 0 {
		maxChildren = DefaultMaxChildren
	}
	if parent.PartsName == "" {
		return nil, fmt.Errorf("parent parts name cannot be empty")
	}
	if parent.AmountRequired.Valid {
		return nil, fmt.Errorf("parent part cannot have an amount required, got %s", parent.AmountRequired.Decimal)
	}
	if len(children) > maxChildren {
		return nil, fmt.Errorf("too many child parts: %d exceeds limit of %d", len(children), maxChildren)
	}
	for i, child := range children {
		if child.PartsName == "" {
			return nil, fmt.Errorf("child part %d: parts name cannot be empty", i+1)
		}
		if !child.AmountRequired.Valid {
			return nil, fmt.Errorf("child part %d: amount required cannot be empty", i+1)
		}
		if !child.AmountRequired.Decimal.IsPositive() {
			return nil, fmt.Errorf("child part %d: amount required must be positive, got %s", i+1, child.AmountRequired.Decimal)
		}
	}

	return &PartsStructure{
		Parent:   parent,
		Children: children,
	}, nil
}

// Parts returns the parent followed by the children, parent at index 0
func (s PartsStructure) Parts() []Part {
	parts := make([]Part, 0, len(s.Children)+1)
	parts = append(parts, s.Parent)
	parts = append(parts, s.Children...)
	return parts
}
