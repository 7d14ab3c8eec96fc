// Package tomlfile loads parts structures from TOML documents.
//
// A structure file has one [parent] table and any number of [[children]]
// tables. Amounts are written as strings so that no precision is lost:
//
//	[parent]
//	trace_id = "2f7a3c4e-1111-4c3b-8b0e-000000000001"
//	parts_name = "PACK"
//	plant_id = "7bb1c5a2-0c1f-4d0b-9a6e-3c2d41f0a001"
//
//	[[children]]
//	trace_id = "2f7a3c4e-1111-4c3b-8b0e-000000000002"
//	parts_name = "CELL"
//	plant_id = "7bb1c5a2-0c1f-4d0b-9a6e-3c2d41f0a001"
//	amount_required = "12.5"
//	amount_required_unit = "kilogram"
package tomlfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

type partDocument struct {
	TraceID            string `toml:"trace_id"`
	PartsName          string `toml:"parts_name"`
	SupportPartsName   string `toml:"support_parts_name"`
	PlantID            string `toml:"plant_id"`
	AmountRequired     string `toml:"amount_required"`
	AmountRequiredUnit string `toml:"amount_required_unit"`
	TerminatedFlag     bool   `toml:"terminated_flag"`
}

type structureDocument struct {
	Parent   *partDocument  `toml:"parent"`
	Children []partDocument `toml:"children"`
}

// LoadPartsStructure reads a structure file from disk.
func LoadPartsStructure(path string) (*entities.PartsStructure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading structure file: %w", err)
	}
	return ParsePartsStructure(data)
}

// ParsePartsStructure decodes a structure document. Business rules are not
// checked here; the caller registers the result through the service layer.
func ParsePartsStructure(data []byte) (*entities.PartsStructure, error) {
	var doc structureDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing structure TOML: %w", err)
	}

	if doc.Parent == nil {
		return nil, fmt.Errorf("structure TOML must contain a [parent] table")
	}

	parent, err := doc.Parent.toPart()
	if err != nil {
		return nil, fmt.Errorf("parent: %w", err)
	}

	children := make([]entities.Part, 0, len(doc.Children))
	for i, c := range doc.Children {
		part, err := c.toPart()
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i+1, err)
		}
		children = append(children, part)
	}

	return &entities.PartsStructure{Parent: parent, Children: children}, nil
}

// MarshalPartsStructure encodes a structure in the same layout that
// ParsePartsStructure reads.
func MarshalPartsStructure(structure *entities.PartsStructure) ([]byte, error) {
	doc := structureDocument{Parent: fromPart(structure.Parent)}
	for _, c := range structure.Children {
		doc.Children = append(doc.Children, *fromPart(c))
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding structure TOML: %w", err)
	}
	return data, nil
}

func (d partDocument) toPart() (entities.Part, error) {
	traceID, err := uuid.Parse(strings.TrimSpace(d.TraceID))
	if err != nil {
		return entities.Part{}, fmt.Errorf("invalid trace_id: %q", d.TraceID)
	}

	plantID, err := uuid.Parse(strings.TrimSpace(d.PlantID))
	if err != nil {
		return entities.Part{}, fmt.Errorf("invalid plant_id: %q", d.PlantID)
	}

	var amount decimal.NullDecimal
	if s := strings.TrimSpace(d.AmountRequired); s != "" {
		value, err := decimal.NewFromString(s)
		if err != nil {
			return entities.Part{}, fmt.Errorf("invalid amount_required: %q", d.AmountRequired)
		}
		amount = decimal.NewNullDecimal(value)
	}

	return entities.Part{
		TraceID:            traceID,
		PartsName:          d.PartsName,
		SupportPartsName:   d.SupportPartsName,
		PlantID:            plantID,
		AmountRequired:     amount,
		AmountRequiredUnit: d.AmountRequiredUnit,
		TerminatedFlag:     d.TerminatedFlag,
	}, nil
}

func fromPart(p entities.Part) *partDocument {
	doc := &partDocument{
		TraceID:            p.TraceID.String(),
		PartsName:          p.PartsName,
		SupportPartsName:   p.SupportPartsName,
		PlantID:            p.PlantID.String(),
		AmountRequiredUnit: p.AmountRequiredUnit,
		TerminatedFlag:     p.TerminatedFlag,
	}
	if p.AmountRequired.Valid {
		doc.AmountRequired = p.AmountRequired.Decimal.String()
	}
	return doc
}
