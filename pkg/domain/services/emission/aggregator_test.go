package emission

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/cfptrace/pkg/domain/entities"
)

func TestAggregateEmissions(t *testing.T) {
	rows := []EmissionRow{
		{AmountRequired: d("3"), PreEmission: nd("0.1")},
		{AmountRequired: d("3"), PreEmission: nd("0.1")},
	}

	sum := AggregateEmissions(rows)
	if sum.PreEmission.String() != "0.6" {
		t.Errorf("Expected pre emission 0.6, got %s", sum.PreEmission)
	}
	if !sum.MainEmission.IsZero() {
		t.Errorf("Expected main emission 0 for rows without main values, got %s", sum.MainEmission)
	}
}

func TestAggregateEmissions_Empty(t *testing.T) {
	sum := AggregateEmissions(nil)
	if !sum.PreEmission.IsZero() || !sum.MainEmission.IsZero() {
		t.Errorf("Expected zero sums for no rows, got %s / %s", sum.PreEmission, sum.MainEmission)
	}
}

func TestAggregateEmissions_MixedRows(t *testing.T) {
	rows := []EmissionRow{
		{AmountRequired: d("1"), PreEmission: nd("10"), MainEmission: nd("2.5")},
		{AmountRequired: d("0.5"), PreEmission: nd("4.2"), MainEmission: null},
		{AmountRequired: d("20"), PreEmission: null, MainEmission: nd("0.00001")},
	}

	sum := AggregateEmissions(rows)
	if !sum.PreEmission.Equal(d("12.1")) {
		t.Errorf("Expected pre emission 12.1, got %s", sum.PreEmission)
	}
	if !sum.MainEmission.Equal(d("2.5002")) {
		t.Errorf("Expected main emission 2.5002, got %s", sum.MainEmission)
	}
}

func TestAggregateEmissions_OrderIndependent(t *testing.T) {
	rows := []EmissionRow{
		{AmountRequired: d("0.3"), PreEmission: nd("0.7"), MainEmission: nd("1.1")},
		{AmountRequired: d("7"), PreEmission: nd("0.01"), MainEmission: nd("0.2")},
		{AmountRequired: d("1"), PreEmission: nd("3.33333"), MainEmission: nd("0")},
	}
	reversed := []EmissionRow{rows[2], rows[1], rows[0]}

	first := AggregateEmissions(rows)
	second := AggregateEmissions(reversed)
	again := AggregateEmissions(rows)

	if !first.PreEmission.Equal(second.PreEmission) || !first.MainEmission.Equal(second.MainEmission) {
		t.Errorf("Expected same sums for permuted rows, got %v and %v", first, second)
	}
	if !first.PreEmission.Equal(again.PreEmission) || !first.MainEmission.Equal(again.MainEmission) {
		t.Errorf("Expected repeated calls to agree, got %v and %v", first, again)
	}
}

func TestAggregatePartRows_ParentHasMultiplierOne(t *testing.T) {
	rows := []entities.PartRow{
		{PreEmission: nd("10"), MainEmission: nd("5")},
		{AmountRequired: nd("2"), PreEmission: nd("1.5"), MainEmission: nd("0.25")},
	}

	sum := AggregatePartRows(rows)
	if !sum.PreEmission.Equal(d("13")) {
		t.Errorf("Expected pre emission 13, got %s", sum.PreEmission)
	}
	if !sum.MainEmission.Equal(d("5.5")) {
		t.Errorf("Expected main emission 5.5, got %s", sum.MainEmission)
	}
}

func TestWeightedDqrAverage_KnownFixture(t *testing.T) {
	targets := []DqrTarget{
		{DqrValue: d("2.1"), AmountRequired: d("0.5"), Emission: d("10")},
		{DqrValue: d("2.3"), AmountRequired: d("20"), Emission: d("0.2")},
		{DqrValue: d("2.2"), AmountRequired: d("30"), Emission: d("0.4")},
	}
	parent := DqrParent{Emission: d("10"), DqrValue: d("2")}

	if got := WeightedDqrAverage(targets, parent); got != "2.13226" {
		t.Errorf("Expected 2.13226, got %s", got)
	}
}

func TestWeightedDqrAverage_ZeroWeight(t *testing.T) {
	if got := WeightedDqrAverage(nil, DqrParent{Emission: decimal.Zero, DqrValue: decimal.Zero}); got != "0" {
		t.Errorf("Expected 0 for zero total weight, got %s", got)
	}

	targets := []DqrTarget{{DqrValue: d("4"), AmountRequired: d("3"), Emission: decimal.Zero}}
	if got := WeightedDqrAverage(targets, DqrParent{Emission: decimal.Zero, DqrValue: d("2")}); got != "0" {
		t.Errorf("Expected 0 when every emission is zero, got %s", got)
	}
}

func TestWeightedDqrAverage_ParentOnly(t *testing.T) {
	if got := WeightedDqrAverage(nil, DqrParent{Emission: d("7.5"), DqrValue: d("1.23456")}); got != "1.23456" {
		t.Errorf("Expected parent DQR 1.23456, got %s", got)
	}
}

func TestWeightedDqrAverages(t *testing.T) {
	targets := []DqrAxesTarget{
		{
			AmountRequired: d("2"),
			Emission:       d("1"),
			DqrValue:       entities.DqrValue{TeR: nd("1"), TiR: nd("3"), GeR: null},
		},
	}
	parent := DqrAxesParent{
		Emission: d("2"),
		DqrValue: entities.DqrValue{TeR: nd("2"), TiR: nd("1"), GeR: nd("1")},
	}

	got := WeightedDqrAverages(targets, parent)
	expected := entities.DqrSheetValue{TeR: "1.5", TiR: "2", GeR: "0.5", Dqr: "1.33334"}
	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
}

func TestAggregateDqr(t *testing.T) {
	children := []entities.PartRow{
		{
			AmountRequired: nd("0.5"),
			PreEmission:    nd("10"),
			MainEmission:   nd("4"),
			PreDqr:         entities.DqrValue{TeR: nd("2.1"), TiR: nd("2.1"), GeR: nd("2.1")},
			MainDqr:        entities.DqrValue{TeR: nd("1"), TiR: nd("1"), GeR: nd("1")},
		},
		{
			AmountRequired: nd("20"),
			PreEmission:    nd("0.2"),
			PreDqr:         entities.DqrValue{TeR: nd("2.3"), TiR: nd("2.3"), GeR: nd("2.3")},
		},
		{
			AmountRequired: nd("30"),
			PreEmission:    nd("0.4"),
			PreDqr:         entities.DqrValue{TeR: nd("2.2"), TiR: nd("2.2"), GeR: nd("2.2")},
		},
	}
	parent := entities.PartRow{
		PreEmission:  nd("10"),
		MainEmission: nd("2"),
		PreDqr:       entities.DqrValue{TeR: nd("2"), TiR: nd("2"), GeR: nd("2")},
		MainDqr:      entities.DqrValue{TeR: nd("4"), TiR: nd("4"), GeR: nd("4")},
	}

	got := AggregateDqr(children, parent)

	expectedPre := entities.DqrSheetValue{TeR: "2.13226", TiR: "2.13226", GeR: "2.13226", Dqr: "2.13226"}
	if got.PreEmission != expectedPre {
		t.Errorf("Expected pre %+v, got %+v", expectedPre, got.PreEmission)
	}

	// main weights: child 0.5*4 = 2, parent 2; (1*2 + 4*2) / 4 = 2.5
	expectedMain := entities.DqrSheetValue{TeR: "2.5", TiR: "2.5", GeR: "2.5", Dqr: "2.5"}
	if got.MainEmission != expectedMain {
		t.Errorf("Expected main %+v, got %+v", expectedMain, got.MainEmission)
	}
}

func TestAggregateDqr_NoValues(t *testing.T) {
	got := AggregateDqr(nil, entities.PartRow{})
	zero := entities.DqrSheetValue{TeR: "0", TiR: "0", GeR: "0", Dqr: "0"}
	if got.PreEmission != zero || got.MainEmission != zero {
		t.Errorf("Expected all-zero DQR values, got %+v", got)
	}
}

func TestNewChildRow_UnknownComponentMakesStageUnknown(t *testing.T) {
	cfp := entities.CfpRow{
		PreProduction:  entities.CfpRecord{CfpType: entities.PreProduction, GhgEmission: nd("1.2")},
		MainProduction: entities.CfpRecord{CfpType: entities.MainProduction, GhgEmission: nd("0.3")},
		PreComponent:   entities.CfpRecord{CfpType: entities.PreComponent, GhgEmission: nd("0.8")},
		MainComponent:  entities.CfpRecord{CfpType: entities.MainComponent},
	}

	row := NewChildRow(cfp, nd("2"))
	if !row.PreEmission.Valid || !row.PreEmission.Decimal.Equal(d("2")) {
		t.Errorf("Expected pre emission 2, got %v", row.PreEmission)
	}
	if row.MainEmission.Valid {
		t.Errorf("Expected unknown main emission, got %s", row.MainEmission.Decimal)
	}

	parentRow := NewParentRow(cfp)
	if parentRow.AmountRequired.Valid {
		t.Error("Expected parent row without amount required")
	}
	if !parentRow.PreEmission.Decimal.Equal(d("1.2")) {
		t.Errorf("Expected parent pre emission 1.2, got %s", parentRow.PreEmission.Decimal)
	}
}
