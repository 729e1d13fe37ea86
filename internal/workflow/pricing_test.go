package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

func TestComputeTotals(t *testing.T) {
	p := &boardstore.Proposal{
		TripFee:       75,
		AssessmentFee: 125,
		TechHours:     4,
		TechRate:      90,
		HelperHours:   2,
		HelperRate:    45,
		Parts: []boardstore.PartLine{
			{Description: "valve", Qty: 2, Unit: 40},
			{Description: "pipe", Qty: 3, Unit: 10},
		},
		Cost:       600,
		Multiplier: 1.75,
		TaxPct:     8.25,
	}

	totals := ComputeTotals(p)

	assert.InDelta(t, 200, totals.Incurred, 1e-9)
	assert.InDelta(t, 360, totals.TechLabor, 1e-9)
	assert.InDelta(t, 90, totals.HelperLabor, 1e-9)
	assert.InDelta(t, 450, totals.Repair, 1e-9)
	assert.InDelta(t, 110, totals.Parts, 1e-9)
	assert.InDelta(t, 1050, totals.GrandBeforeTax, 1e-9)
	assert.InDelta(t, 86.625, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 1136.625, totals.GrandWithTax, 1e-9)
}

func TestComputeTotalsZeroInputs(t *testing.T) {
	totals := ComputeTotals(&boardstore.Proposal{Multiplier: 1.75})
	assert.Zero(t, totals.GrandBeforeTax)
	assert.Zero(t, totals.GrandWithTax)
	assert.Zero(t, totals.Parts)
}
