package emission

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

// NewParentRow builds the aggregation row of the parent part from its own
// production records. The parent has no AmountRequired.
func NewParentRow(cfp entities.CfpRow) entities.PartRow {
	return entities.PartRow{
		PreEmission:  cfp.PreProduction.GhgEmission,
		MainEmission: cfp.MainProduction.GhgEmission,
		PreDqr:       cfp.PreProduction.DqrValue,
		MainDqr:      cfp.MainProduction.DqrValue,
	}
}

// NewChildRow builds the aggregation row of a child part. A child's per-unit
// emission is its production plus component share; if either is unknown the
// stage emission is unknown too.
func NewChildRow(cfp entities.CfpRow, amountRequired decimal.NullDecimal) entities.PartRow {
	return entities.PartRow{
		AmountRequired: amountRequired,
		PreEmission:    SumStrict(cfp.PreProduction.GhgEmission, cfp.PreComponent.GhgEmission),
		MainEmission:   SumStrict(cfp.MainProduction.GhgEmission, cfp.MainComponent.GhgEmission),
		PreDqr:         cfp.PreProduction.DqrValue,
		MainDqr:        cfp.MainProduction.DqrValue,
	}
}

// Total adds the pre and main emissions of a sum
func Total(sum entities.CfpSum) decimal.Decimal {
	return SumDecimal(valid(sum.PreEmission), valid(sum.MainEmission))
}
