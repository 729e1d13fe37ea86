package repo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/gmnfield/opsboard/internal/workflow"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// WorkOrders is the work order repository.
type WorkOrders struct {
	store *boardstore.Client
	now   func() time.Time
}

// NewWorkOrders creates a work order repository over the given store.
func NewWorkOrders(store *boardstore.Client) *WorkOrders {
	return &WorkOrders{store: store, now: time.Now}
}

// WorkOrderForm carries operator input for creating a work order.
type WorkOrderForm struct {
	WONumber    string
	Client      string
	Trade       string
	City        string
	NotToExceed float64
	Status      boardstore.WorkOrderStatus
	ETAAt       *time.Time
	ETAText     string
}

// List returns all work orders, newest first.
func (r *WorkOrders) List(ctx context.Context) []boardstore.WorkOrder {
	return r.store.LoadWorkOrders(ctx)
}

// Get returns the work order with the given id.
func (r *WorkOrders) Get(ctx context.Context, id string) (*boardstore.WorkOrder, error) {
	rows := r.store.LoadWorkOrders(ctx)
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "work order", ID: id}
}

// Create validates the form, fills defaults and persists a new work order.
// A missing WO number gets a generated WO-NNNN one; a missing status starts
// the order at waiting.
func (r *WorkOrders) Create(ctx context.Context, form WorkOrderForm) (*boardstore.WorkOrder, error) {
	client := workflow.SanitizeText(form.Client, 240)
	if client == "" {
		return nil, &ValidationError{Field: "client", Reason: "cannot be empty"}
	}
	if form.NotToExceed < 0 {
		return nil, &ValidationError{Field: "nte", Reason: "must be >= 0"}
	}

	status := form.Status
	if status == "" {
		status = boardstore.WorkOrderWaiting
	}
	if err := status.Validate(); err != nil {
		return nil, &ValidationError{Field: "status", Reason: err.Error()}
	}

	number := workflow.SanitizeText(form.WONumber, 64)
	if number == "" {
		number = fmt.Sprintf("WO-%d", 1000+rand.Intn(9000))
	}

	now := r.now()
	row := boardstore.WorkOrder{
		ID:          uuid.New().String(),
		WONumber:    number,
		Client:      client,
		Trade:       workflow.SanitizeText(form.Trade, 60),
		City:        workflow.SanitizeText(form.City, 120),
		NotToExceed: form.NotToExceed,
		Status:      status,
		ETAAt:       form.ETAAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if row.ETAAt == nil {
		row.ETAText = workflow.SanitizeText(form.ETAText, 120)
		if row.ETAText == "" {
			row.ETAText = "TBD"
		}
	}

	rows := r.store.LoadWorkOrders(ctx)
	rows = append([]boardstore.WorkOrder{row}, rows...)
	if err := r.store.SaveWorkOrders(ctx, rows); err != nil {
		return nil, err
	}
	return &row, nil
}

// SetStatus applies an explicit operator transition. Ordering is business
// convention, not machine-enforced: any valid status is accepted. The
// completed precondition is checked only by the cost request workflow.
func (r *WorkOrders) SetStatus(ctx context.Context, id string, status boardstore.WorkOrderStatus) (*boardstore.WorkOrder, error) {
	if err := status.Validate(); err != nil {
		return nil, &ValidationError{Field: "status", Reason: err.Error()}
	}

	return r.update(ctx, id, func(row *boardstore.WorkOrder) error {
		row.Status = status
		return nil
	})
}

// SetETA updates the schedule. Setting an instant clears the free-text
// fallback; clearing the instant restores a text label.
func (r *WorkOrders) SetETA(ctx context.Context, id string, etaAt *time.Time, etaText string) (*boardstore.WorkOrder, error) {
	return r.update(ctx, id, func(row *boardstore.WorkOrder) error {
		row.ETAAt = etaAt
		if etaAt != nil {
			row.ETAText = ""
		} else {
			row.ETAText = workflow.SanitizeText(etaText, 120)
			if row.ETAText == "" {
				row.ETAText = "TBD"
			}
		}
		return nil
	})
}

// AssignTechnician assigns a technician from the tech list to the work
// order, caching the display name alongside the authoritative id. The
// technician must exist, must not be blacklisted, and must be eligible for
// the order's trade.
func (r *WorkOrders) AssignTechnician(ctx context.Context, id, technicianID string) (*boardstore.WorkOrder, error) {
	techs := r.store.LoadTechnicians(ctx)
	var tech *boardstore.Technician
	for i := range techs {
		if techs[i].ID == technicianID {
			tech = &techs[i]
			break
		}
	}
	if tech == nil {
		return nil, &NotFoundError{Kind: "technician", ID: technicianID}
	}
	if tech.Blacklisted {
		return nil, &PreconditionError{Reason: fmt.Sprintf("technician %s is blacklisted", tech.Name)}
	}

	return r.update(ctx, id, func(row *boardstore.WorkOrder) error {
		if !workflow.EligibleForTrade(tech.Trade, row.Trade) {
			return &PreconditionError{Reason: fmt.Sprintf("technician trade %q is not eligible for %q", tech.Trade, row.Trade)}
		}
		row.TechnicianID = tech.ID
		row.TechnicianName = tech.Name
		return nil
	})
}

// UnassignTechnician clears the technician reference and its cached name.
func (r *WorkOrders) UnassignTechnician(ctx context.Context, id string) (*boardstore.WorkOrder, error) {
	return r.update(ctx, id, func(row *boardstore.WorkOrder) error {
		row.TechnicianID = ""
		row.TechnicianName = ""
		return nil
	})
}

// Delete removes a work order. File records pointing at it become orphans
// and are surfaced by the files repository, never cascaded.
func (r *WorkOrders) Delete(ctx context.Context, id string) error {
	rows := r.store.LoadWorkOrders(ctx)
	kept := rows[:0]
	found := false
	for i := range rows {
		if rows[i].ID == id {
			found = true
			continue
		}
		kept = append(kept, rows[i])
	}
	if !found {
		return &NotFoundError{Kind: "work order", ID: id}
	}
	return r.store.SaveWorkOrders(ctx, kept)
}

// update is the shared load → mutate → save unit of work.
func (r *WorkOrders) update(ctx context.Context, id string, mutate func(*boardstore.WorkOrder) error) (*boardstore.WorkOrder, error) {
	rows := r.store.LoadWorkOrders(ctx)
	for i := range rows {
		if rows[i].ID != id {
			continue
		}
		if err := mutate(&rows[i]); err != nil {
			return nil, err
		}
		rows[i].UpdatedAt = r.now()
		if err := r.store.SaveWorkOrders(ctx, rows); err != nil {
			return nil, err
		}
		return &rows[i], nil
	}
	return nil, &NotFoundError{Kind: "work order", ID: id}
}
