// Package emission rolls a parent part's and its children's CFP and DQR values
// up into structure totals. All arithmetic is exact decimal arithmetic.
package emission

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

// EmissionRow is one part's contribution to the emission totals
type EmissionRow struct {
	AmountRequired decimal.Decimal
	PreEmission    decimal.NullDecimal
	MainEmission   decimal.NullDecimal
}

// DqrTarget is one child's input to a single-axis DQR average
type DqrTarget struct {
	DqrValue       decimal.Decimal
	AmountRequired decimal.Decimal
	Emission       decimal.Decimal
}

// DqrParent is the parent's input to a single-axis DQR average
type DqrParent struct {
	Emission decimal.Decimal
	DqrValue decimal.Decimal
}

// DqrAxesTarget is one child's input to a three-axis DQR average
type DqrAxesTarget struct {
	AmountRequired decimal.Decimal
	Emission       decimal.Decimal
	DqrValue       entities.DqrValue
}

// DqrAxesParent is the parent's input to a three-axis DQR average
type DqrAxesParent struct {
	Emission decimal.Decimal
	DqrValue entities.DqrValue
}

// AggregateEmissions sums amountRequired x emission over all rows, separately
// for the pre and main stages. Missing emissions contribute zero.
func AggregateEmissions(rows []EmissionRow) entities.CfpSum {
	pre := make([]decimal.NullDecimal, 0, len(rows))
	main := make([]decimal.NullDecimal, 0, len(rows))
	for _, row := range rows {
		pre = append(pre, valid(row.AmountRequired.Mul(orZero(row.PreEmission))))
		main = append(main, valid(row.AmountRequired.Mul(orZero(row.MainEmission))))
	}

	return entities.CfpSum{
		PreEmission:  SumDecimal(pre...),
		MainEmission: SumDecimal(main...),
	}
}

// AggregatePartRows is AggregateEmissions over part rows, where a row without
// AmountRequired (the parent) has multiplier one.
func AggregatePartRows(rows []entities.PartRow) entities.CfpSum {
	emissionRows := make([]EmissionRow, 0, len(rows))
	for _, row := range rows {
		emissionRows = append(emissionRows, EmissionRow{
			AmountRequired: multiplier(row.AmountRequired),
			PreEmission:    row.PreEmission,
			MainEmission:   row.MainEmission,
		})
	}
	return AggregateEmissions(emissionRows)
}

// WeightedDqrAverage averages one DQR axis over the children and the parent,
// weighting each row by its total contribution (amountRequired x emission; the
// parent by its emission alone). A zero total weight yields "0".
func WeightedDqrAverage(targets []DqrTarget, parent DqrParent) string {
	weights := make([]decimal.NullDecimal, 0, len(targets)+1)
	contributions := make([]decimal.NullDecimal, 0, len(targets)+1)
	for _, target := range targets {
		weight := target.AmountRequired.Mul(target.Emission)
		weights = append(weights, valid(weight))
		contributions = append(contributions, valid(target.DqrValue.Mul(weight)))
	}
	weights = append(weights, valid(parent.Emission))
	contributions = append(contributions, valid(parent.DqrValue.Mul(parent.Emission)))

	totalWeight := SumDecimal(weights...)
	if totalWeight.IsZero() {
		return "0"
	}

	return Round5(quoCeil(SumDecimal(contributions...), totalWeight, DqrPlaces))
}

// WeightedDqrAverages runs WeightedDqrAverage for TeR, TiR and GeR and reports
// the mean of the three rounded results as Dqr.
func WeightedDqrAverages(targets []DqrAxesTarget, parent DqrAxesParent) entities.DqrSheetValue {
	axis := func(pick func(entities.DqrValue) decimal.NullDecimal) string {
		axisTargets := make([]DqrTarget, 0, len(targets))
		for _, target := range targets {
			axisTargets = append(axisTargets, DqrTarget{
				DqrValue:       orZero(pick(target.DqrValue)),
				AmountRequired: target.AmountRequired,
				Emission:       target.Emission,
			})
		}
		return WeightedDqrAverage(axisTargets, DqrParent{
			Emission: parent.Emission,
			DqrValue: orZero(pick(parent.DqrValue)),
		})
	}

	ter := axis(func(v entities.DqrValue) decimal.NullDecimal { return v.TeR })
	tir := axis(func(v entities.DqrValue) decimal.NullDecimal { return v.TiR })
	ger := axis(func(v entities.DqrValue) decimal.NullDecimal { return v.GeR })

	return entities.DqrSheetValue{
		TeR: ter,
		TiR: tir,
		GeR: ger,
		Dqr: meanOfRounded(ter, tir, ger),
	}
}

// AggregateDqr computes the DQR sheet values for the pre and main stages of a
// parent and its children. Missing numeric fields count as zero.
func AggregateDqr(children []entities.PartRow, parent entities.PartRow) entities.CfpDqr {
	preTargets := make([]DqrAxesTarget, 0, len(children))
	mainTargets := make([]DqrAxesTarget, 0, len(children))
	for _, child := range children {
		amount := orZero(child.AmountRequired)
		preTargets = append(preTargets, DqrAxesTarget{
			AmountRequired: amount,
			Emission:       orZero(child.PreEmission),
			DqrValue:       child.PreDqr,
		})
		mainTargets = append(mainTargets, DqrAxesTarget{
			AmountRequired: amount,
			Emission:       orZero(child.MainEmission),
			DqrValue:       child.MainDqr,
		})
	}

	return entities.CfpDqr{
		PreEmission: WeightedDqrAverages(preTargets, DqrAxesParent{
			Emission: orZero(parent.PreEmission),
			DqrValue: parent.PreDqr,
		}),
		MainEmission: WeightedDqrAverages(mainTargets, DqrAxesParent{
			Emission: orZero(parent.MainEmission),
			DqrValue: parent.MainDqr,
		}),
	}
}

// meanOfRounded reparses already-rounded axis strings and rounds their mean up.
func meanOfRounded(values ...string) string {
	sum := decimal.Zero
	for _, v := range values {
		// Inputs come from Round5, so they always parse.
		d, err := decimal.NewFromString(v)
		if err != nil {
			d = decimal.Zero
		}
		sum = sum.Add(d)
	}
	return Round5(quoCeil(sum, decimal.NewFromInt(int64(len(values))), DqrPlaces))
}

func multiplier(amount decimal.NullDecimal) decimal.Decimal {
	if amount.Valid {
		return amount.Decimal
	}
	return decimal.NewFromInt(1)
}
