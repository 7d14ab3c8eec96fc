package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

// PartRole distinguishes the parent row from child rows in a summary
type PartRole string

const (
	RoleParent PartRole = "parent"
	RoleChild  PartRole = "child"
)

// CfpSummary is the CFP/DQR rollup of one registered parts structure
type CfpSummary struct {
	ParentTraceID uuid.UUID     `json:"parentTraceId"`
	PartsName     string        `json:"partsName"`
	Rows          []PartSummary `json:"rows"`

	// Sum is the amount-weighted emission over parent and children
	Sum   entities.CfpSum `json:"cfpSum"`
	Total decimal.Decimal `json:"total"`
	Dqr   entities.CfpDqr `json:"cfpDqr"`

	Display SummaryDisplay `json:"display"`
}

// PartSummary is one part of the structure with its per-unit emissions
type PartSummary struct {
	Role               PartRole            `json:"role"`
	Index              int                 `json:"index"`
	TraceID            uuid.UUID           `json:"traceId"`
	PartsName          string              `json:"partsName"`
	SupportPartsName   string              `json:"supportPartsName"`
	PlantName          string              `json:"plantName"`
	OpenPlantID        string              `json:"openPlantId"`
	AmountRequired     decimal.NullDecimal `json:"amountRequired"`
	AmountRequiredUnit string              `json:"amountRequiredUnit"`
	EmissionsUnit      string              `json:"emissionsUnit"`

	PreEmission  decimal.NullDecimal `json:"preEmission"`
	MainEmission decimal.NullDecimal `json:"mainEmission"`
	// Total is unknown when either stage emission is unknown
	Total decimal.NullDecimal `json:"total"`

	PreDqr  entities.DqrValue `json:"preDqr"`
	MainDqr entities.DqrValue `json:"mainDqr"`

	Display RowDisplay `json:"display"`
}

// RowDisplay holds human-readable values. Unknown values render as "".
type RowDisplay struct {
	PreEmission  string `json:"preEmission"`
	MainEmission string `json:"mainEmission"`
	Total        string `json:"total"`
}

// SummaryDisplay holds human-readable structure totals
type SummaryDisplay struct {
	Precision    int32  `json:"precision"`
	PreEmission  string `json:"preEmission"`
	MainEmission string `json:"mainEmission"`
	Total        string `json:"total"`
}
