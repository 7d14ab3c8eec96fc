package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestPlant_Validation(t *testing.T) {
	id := uuid.New()
	plant, err := NewPlant(id, "Osaka Works", "OPN-001")
	if err != nil {
		t.Fatalf("Expected valid plant creation to succeed: %v", err)
	}
	if plant.PlantID != id {
		t.Errorf("Expected plant id %s, got %s", id, plant.PlantID)
	}

	if _, err := NewPlant(uuid.Nil, "Osaka Works", ""); err == nil || err.Error() != "plant id cannot be empty" {
		t.Errorf("Expected 'plant id cannot be empty', got %v", err)
	}
	if _, err := NewPlant(id, "", ""); err == nil || err.Error() != "plant name cannot be empty" {
		t.Errorf("Expected 'plant name cannot be empty', got %v", err)
	}
}

func TestPartsStructure_Validation(t *testing.T) {
	parent := Part{TraceID: uuid.New(), PartsName: "PACK"}
	cell := Part{TraceID: uuid.New(), PartsName: "CELL", AmountRequired: amount("12")}

	structure, err := NewPartsStructure(parent, []Part{cell}, 0)
	if err != nil {
		t.Fatalf("Expected valid structure creation to succeed: %v", err)
	}
	parts := structure.Parts()
	if len(parts) != 2 || parts[0].PartsName != "PACK" || parts[1].PartsName != "CELL" {
		t.Errorf("Expected [PACK CELL], got %v", parts)
	}

	testCases := []struct {
		name        string
		parent      Part
		children    []Part
		maxChildren int
		expectError string
	}{
		{"empty parent name", Part{}, nil, 0, "parent parts name cannot be empty"},
		{"parent with amount", Part{PartsName: "PACK", AmountRequired: amount("2")}, nil, 0, "parent part cannot have an amount required, got 2"},
		{"too many children", parent, []Part{cell, cell, cell}, 2, "too many child parts: 3 exceeds limit of 2"},
		{"child without name", parent, []Part{{AmountRequired: amount("1")}}, 0, "child part 1: parts name cannot be empty"},
		{"child without amount", parent, []Part{{PartsName: "CELL"}}, 0, "child part 1: amount required cannot be empty"},
		{"child with zero amount", parent, []Part{cell, {PartsName: "CASE", AmountRequired: amount("0")}}, 0, "child part 2: amount required must be positive, got 0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPartsStructure(tc.parent, tc.children, tc.maxChildren)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestPart_Multiplier(t *testing.T) {
	if got := (Part{}).Multiplier(); !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected multiplier 1 for a part without amount, got %s", got)
	}
	if got := (Part{AmountRequired: amount("0.25")}).Multiplier(); got.String() != "0.25" {
		t.Errorf("Expected multiplier 0.25, got %s", got)
	}
}

func TestPart_IdentityKey(t *testing.T) {
	plant := uuid.New()
	a := Part{TraceID: uuid.New(), PartsName: "CELL", SupportPartsName: "C-1", PlantID: plant, AmountRequired: amount("1")}
	b := Part{TraceID: uuid.New(), PartsName: "CELL", SupportPartsName: "C-1", PlantID: plant, AmountRequired: amount("3")}
	if a.IdentityKey() != b.IdentityKey() {
		t.Error("Expected parts with same name, support name and plant to share an identity")
	}

	b.PlantID = uuid.New()
	if a.IdentityKey() == b.IdentityKey() {
		t.Error("Expected parts at different plants to differ")
	}
}
