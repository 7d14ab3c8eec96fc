package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CfpType identifies which share of a part's carbon footprint a record holds
type CfpType string

const (
	PreProduction  CfpType = "preProduction"
	MainProduction CfpType = "mainProduction"
	PreComponent   CfpType = "preComponent"
	MainComponent  CfpType = "mainComponent"
)

// CfpTypes lists every CFP type a complete part carries
var CfpTypes = []CfpType{PreProduction, MainProduction, PreComponent, MainComponent}

// ParseCfpType parses the wire name of a CFP type
func ParseCfpType(s string) (CfpType, error) {
	for _, t := range CfpTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid cfp type: %s (expected: preProduction, mainProduction, preComponent, or mainComponent)", s)
}

// DqrType identifies the processing stage a DQR value belongs to
type DqrType string

const (
	PreProcessing  DqrType = "preProcessing"
	MainProcessing DqrType = "mainProcessing"
)

// ParseDqrType parses the wire name of a DQR type. Empty input yields an empty type.
func ParseDqrType(s string) (DqrType, error) {
	switch s {
	case "":
		return "", nil
	case string(PreProcessing):
		return PreProcessing, nil
	case string(MainProcessing):
		return MainProcessing, nil
	default:
		return "", fmt.Errorf("invalid dqr type: %s (expected: preProcessing or mainProcessing)", s)
	}
}

// DqrValue holds the technological, temporal and geographical representativeness ratios
type DqrValue struct {
	TeR decimal.NullDecimal `json:"TeR"`
	TiR decimal.NullDecimal `json:"TiR"`
	GeR decimal.NullDecimal `json:"GeR"`
}

// CfpRecord is a single registered CFP value of a part
type CfpRecord struct {
	CfpID         uuid.UUID
	TraceID       uuid.UUID
	CfpType       CfpType
	GhgEmission   decimal.NullDecimal
	EmissionsUnit string
	DqrType       DqrType
	DqrValue      DqrValue
}

// CfpRow groups the four CFP records of one part
type CfpRow struct {
	TraceID        uuid.UUID
	PreProduction  CfpRecord
	MainProduction CfpRecord
	PreComponent   CfpRecord
	MainComponent  CfpRecord
}

// NewCfpRow groups records by type. Callers must pass all four types for the
// part; a missing type means the record set was assembled wrongly and panics.
func NewCfpRow(traceID uuid.UUID, records []CfpRecord) CfpRow {
	byType := make(map[CfpType]CfpRecord, len(CfpTypes))
	for _, record := range records {
		byType[record.CfpType] = record
	}

	find := func(t CfpType) CfpRecord {
		record, ok := byType[t]
		if !ok {
			panic(fmt.Sprintf("CFP data not found for type %s", t))
		}
		return record
	}

	return CfpRow{
		TraceID:        traceID,
		PreProduction:  find(PreProduction),
		MainProduction: find(MainProduction),
		PreComponent:   find(PreComponent),
		MainComponent:  find(MainComponent),
	}
}

// PartRow is the aggregation input for one part
type PartRow struct {
	AmountRequired decimal.NullDecimal
	PreEmission    decimal.NullDecimal
	MainEmission   decimal.NullDecimal
	PreDqr         DqrValue
	MainDqr        DqrValue
}

// CfpSum is the amount-weighted emission total of a parts structure
type CfpSum struct {
	PreEmission  decimal.Decimal `json:"preEmission"`
	MainEmission decimal.Decimal `json:"mainEmission"`
}

// DqrSheetValue holds the rounded DQR axes and their mean as display strings
type DqrSheetValue struct {
	TeR string `json:"TeR"`
	TiR string `json:"TiR"`
	GeR string `json:"GeR"`
	Dqr string `json:"dqr"`
}

// CfpDqr holds the DQR rollup for both processing stages
type CfpDqr struct {
	PreEmission  DqrSheetValue `json:"preEmission"`
	MainEmission DqrSheetValue `json:"mainEmission"`
}
