package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gmnfield/opsboard/internal/workflow"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// Proposals is the proposal repository. A proposal prices a repair for a
// work order; its totals are snapshotted once at creation and never
// recomputed.
type Proposals struct {
	store *boardstore.Client
	now   func() time.Time
}

// NewProposals creates a proposal repository over the given store.
func NewProposals(store *boardstore.Client) *Proposals {
	return &Proposals{store: store, now: time.Now}
}

// ProposalForm carries operator input for a new proposal. HelperID is
// optional; when set it must name an existing technician.
type ProposalForm struct {
	WorkOrderID   string
	TechnicianID  string
	HelperID      string
	Scope         string
	TripFee       float64
	AssessmentFee float64
	TechHours     float64
	TechRate      float64
	HelperHours   float64
	HelperRate    float64
	Parts         []boardstore.PartLine
	Cost          float64
	Multiplier    float64
	TaxPct        float64
}

// List returns all proposals, newest first.
func (r *Proposals) List(ctx context.Context) []boardstore.Proposal {
	return r.store.LoadProposals(ctx)
}

// Get returns the proposal with the given id.
func (r *Proposals) Get(ctx context.Context, id string) (*boardstore.Proposal, error) {
	props := r.store.LoadProposals(ctx)
	for i := range props {
		if props[i].ID == id {
			return &props[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "proposal", ID: id}
}

// Create prices and records a proposal. The work order and technician must
// exist; the helper, when given, must exist and differ from the lead
// technician. Fee and rate inputs must be non-negative. The totals snapshot
// is computed here, once.
func (r *Proposals) Create(ctx context.Context, form ProposalForm) (*boardstore.Proposal, error) {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"tripFee", form.TripFee},
		{"assessmentFee", form.AssessmentFee},
		{"techHours", form.TechHours},
		{"techRate", form.TechRate},
		{"helperHours", form.HelperHours},
		{"helperRate", form.HelperRate},
		{"cost", form.Cost},
		{"taxPct", form.TaxPct},
	} {
		if f.value < 0 {
			return nil, &ValidationError{Field: f.name, Reason: "must be >= 0"}
		}
	}
	for _, part := range form.Parts {
		if part.Qty < 0 || part.Unit < 0 {
			return nil, &ValidationError{Field: "parts", Reason: "quantities and unit prices must be >= 0"}
		}
	}

	orders := r.store.LoadWorkOrders(ctx)
	var wo *boardstore.WorkOrder
	for i := range orders {
		if orders[i].ID == form.WorkOrderID {
			wo = &orders[i]
			break
		}
	}
	if wo == nil {
		return nil, &NotFoundError{Kind: "work order", ID: form.WorkOrderID}
	}

	techs := r.store.LoadTechnicians(ctx)
	if !technicianExists(techs, form.TechnicianID) {
		return nil, &NotFoundError{Kind: "technician", ID: form.TechnicianID}
	}
	if form.HelperID != "" {
		if form.HelperID == form.TechnicianID {
			return nil, &ValidationError{Field: "helperId", Reason: "helper must differ from the lead technician"}
		}
		if !technicianExists(techs, form.HelperID) {
			return nil, &NotFoundError{Kind: "technician", ID: form.HelperID}
		}
	}

	now := r.now()
	prop := boardstore.Proposal{
		ID:            uuid.New().String(),
		WorkOrderID:   wo.ID,
		WONumber:      wo.WONumber,
		Client:        wo.Client,
		TechnicianID:  form.TechnicianID,
		HelperID:      form.HelperID,
		Scope:         workflow.SanitizeText(form.Scope, 2000),
		TripFee:       form.TripFee,
		AssessmentFee: form.AssessmentFee,
		TechHours:     form.TechHours,
		TechRate:      form.TechRate,
		HelperHours:   form.HelperHours,
		HelperRate:    form.HelperRate,
		Parts:         form.Parts,
		Cost:          form.Cost,
		Multiplier:    form.Multiplier,
		TaxPct:        form.TaxPct,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if prop.Parts == nil {
		prop.Parts = []boardstore.PartLine{}
	}
	if prop.Multiplier <= 0 {
		prop.Multiplier = boardstore.DefaultMultiplier
	}
	prop.Totals = workflow.ComputeTotals(&prop)

	props := r.store.LoadProposals(ctx)
	props = append([]boardstore.Proposal{prop}, props...)
	if err := r.store.SaveProposals(ctx, props); err != nil {
		return nil, err
	}
	return &prop, nil
}

// Delete removes a proposal.
func (r *Proposals) Delete(ctx context.Context, id string) error {
	props := r.store.LoadProposals(ctx)
	for i := range props {
		if props[i].ID != id {
			continue
		}
		props = append(props[:i], props[i+1:]...)
		return r.store.SaveProposals(ctx, props)
	}
	return &NotFoundError{Kind: "proposal", ID: id}
}

func technicianExists(techs []boardstore.Technician, id string) bool {
	for i := range techs {
		if techs[i].ID == id {
			return true
		}
	}
	return false
}
