package workflow

import "github.com/gmnfield/opsboard/pkg/boardstore"

// Proposal pricing
//
// Totals are computed exactly once, when the proposal is created, and stored
// as a snapshot on the record. They are historical record: later edits to
// rates, parts or tax never recompute them.

// ComputeTotals prices a proposal from its fee, labor, parts and markup
// inputs. The grand total is cost × multiplier, taxed afterwards; incurred
// fees, labor and parts are itemized context, not additive inputs to it.
func ComputeTotals(p *boardstore.Proposal) boardstore.ProposalTotals {
	techLabor := p.TechHours * p.TechRate
	helperLabor := p.HelperHours * p.HelperRate

	var parts float64
	for _, line := range p.Parts {
		parts += line.Qty * line.Unit
	}

	grandBeforeTax := p.Cost * p.Multiplier
	taxAmount := grandBeforeTax * (p.TaxPct / 100)

	return boardstore.ProposalTotals{
		Incurred:       p.TripFee + p.AssessmentFee,
		TechLabor:      techLabor,
		HelperLabor:    helperLabor,
		Repair:         techLabor + helperLabor,
		Parts:          parts,
		GrandBeforeTax: grandBeforeTax,
		TaxAmount:      taxAmount,
		GrandWithTax:   grandBeforeTax + taxAmount,
	}
}
