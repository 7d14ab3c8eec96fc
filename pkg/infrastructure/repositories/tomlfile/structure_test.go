package tomlfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

const sampleStructure = `
[parent]
trace_id = "2f7a3c4e-1111-4c3b-8b0e-000000000001"
parts_name = "PACK"
support_parts_name = "P-1"
plant_id = "7bb1c5a2-0c1f-4d0b-9a6e-3c2d41f0a001"

[[children]]
trace_id = "2f7a3c4e-1111-4c3b-8b0e-000000000002"
parts_name = "CELL"
plant_id = "7bb1c5a2-0c1f-4d0b-9a6e-3c2d41f0a001"
amount_required = "12.00001"
amount_required_unit = "kilogram"

[[children]]
trace_id = "2f7a3c4e-1111-4c3b-8b0e-000000000003"
parts_name = "CASE"
plant_id = "7bb1c5a2-0c1f-4d0b-9a6e-3c2d41f0a001"
amount_required = "1"
terminated_flag = true
`

func TestLoadPartsStructure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "structure.toml")
	if err := os.WriteFile(path, []byte(sampleStructure), 0644); err != nil {
		t.Fatalf("Failed to write structure file: %v", err)
	}

	structure, err := LoadPartsStructure(path)
	if err != nil {
		t.Fatalf("Failed to load structure: %v", err)
	}

	if structure.Parent.PartsName != "PACK" || structure.Parent.SupportPartsName != "P-1" {
		t.Errorf("Unexpected parent %+v", structure.Parent)
	}
	if structure.Parent.AmountRequired.Valid {
		t.Error("Expected parent without amount required")
	}
	if len(structure.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(structure.Children))
	}
	if got := structure.Children[0].AmountRequired.Decimal.String(); got != "12.00001" {
		t.Errorf("Expected amount 12.00001, got %s", got)
	}
	if !structure.Children[1].TerminatedFlag {
		t.Error("Expected second child to be terminated")
	}
}

func TestParsePartsStructure_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectError string
	}{
		{"malformed", "[parent\n", "parsing structure TOML"},
		{"no parent", "[[children]]\nparts_name = \"CELL\"\n", "must contain a [parent] table"},
		{"bad trace id", "[parent]\ntrace_id = \"x\"\n", "parent: invalid trace_id"},
		{
			"bad child amount",
			"[parent]\ntrace_id = \"" + uuid.NewString() + "\"\nplant_id = \"" + uuid.NewString() + "\"\n" +
				"[[children]]\ntrace_id = \"" + uuid.NewString() + "\"\nplant_id = \"" + uuid.NewString() + "\"\namount_required = \"lots\"\n",
			"children[1]: invalid amount_required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePartsStructure([]byte(tc.input))
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestMarshalPartsStructure_RoundTrip(t *testing.T) {
	original := &entities.PartsStructure{
		Parent: entities.Part{TraceID: uuid.New(), PartsName: "PACK", PlantID: uuid.New()},
		Children: []entities.Part{{
			TraceID:        uuid.New(),
			PartsName:      "CELL",
			PlantID:        uuid.New(),
			AmountRequired: decimal.NewNullDecimal(decimal.RequireFromString("0.00001")),
		}},
	}

	data, err := MarshalPartsStructure(original)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	decoded, err := ParsePartsStructure(data)
	if err != nil {
		t.Fatalf("Failed to parse marshalled structure: %v", err)
	}

	if decoded.Parent.TraceID != original.Parent.TraceID {
		t.Errorf("Expected parent trace id %s, got %s", original.Parent.TraceID, decoded.Parent.TraceID)
	}
	if !decoded.Children[0].AmountRequired.Decimal.Equal(original.Children[0].AmountRequired.Decimal) {
		t.Errorf("Expected amount %s, got %s", original.Children[0].AmountRequired.Decimal, decoded.Children[0].AmountRequired.Decimal)
	}
}
