package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gmnfield/opsboard/internal/workflow"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// Costs is the cost request repository. A cost request is the AP approval
// unit for a work order: requested, then approved, then paid. Paid is
// terminal; any earlier state may be sent back to requested.
type Costs struct {
	store *boardstore.Client
	now   func() time.Time
}

// NewCosts creates a cost request repository over the given store.
func NewCosts(store *boardstore.Client) *Costs {
	return &Costs{store: store, now: time.Now}
}

// List returns all cost requests, newest first.
func (r *Costs) List(ctx context.Context) []boardstore.CostRequest {
	return r.store.LoadCostRequests(ctx)
}

// Get returns the cost request with the given id.
func (r *Costs) Get(ctx context.Context, id string) (*boardstore.CostRequest, error) {
	costs := r.store.LoadCostRequests(ctx)
	for i := range costs {
		if costs[i].ID == id {
			return &costs[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "cost request", ID: id}
}

// Create opens a cost request against a work order. Preconditions, checked
// in order against fresh collection reads:
//
//   - the work order exists and is completed
//   - the work order has an assigned technician who exists and is not
//     blacklisted
//   - technicianID, when given, names that assigned technician; when empty
//     it defaults to the assignment
//   - no other open (requested or approved) request exists for the work
//     order
//
// The new request caches the work order number and technician name for
// display; woId and technicianId stay the authoritative references.
func (r *Costs) Create(ctx context.Context, workOrderID, technicianID string, amount float64, note string) (*boardstore.CostRequest, error) {
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be > 0"}
	}

	orders := r.store.LoadWorkOrders(ctx)
	var wo *boardstore.WorkOrder
	for i := range orders {
		if orders[i].ID == workOrderID {
			wo = &orders[i]
			break
		}
	}
	if wo == nil {
		return nil, &NotFoundError{Kind: "work order", ID: workOrderID}
	}
	if wo.Status != boardstore.WorkOrderCompleted {
		return nil, &PreconditionError{Reason: "work order " + wo.WONumber + " is " + string(wo.Status) + ", cost requests need a completed work order"}
	}
	if wo.TechnicianID == "" {
		return nil, &PreconditionError{Reason: "work order " + wo.WONumber + " has no assigned technician"}
	}
	if technicianID == "" {
		technicianID = wo.TechnicianID
	} else if technicianID != wo.TechnicianID {
		return nil, &PreconditionError{Reason: "technician is not assigned to work order " + wo.WONumber}
	}

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
		return nil, &PreconditionError{Reason: "technician " + tech.Name + " is blacklisted: " + tech.BlacklistReason}
	}

	costs := r.store.LoadCostRequests(ctx)
	if workflow.HasOpenRequest(costs, workOrderID) {
		return nil, &DuplicateOpenRequestError{WorkOrderID: workOrderID}
	}

	now := r.now()
	req := boardstore.CostRequest{
		ID:             uuid.New().String(),
		WorkOrderID:    workOrderID,
		WONumber:       wo.WONumber,
		Client:         wo.Client,
		Trade:          wo.Trade,
		TechnicianID:   technicianID,
		TechnicianName: tech.Name,
		Amount:         amount,
		Note:           workflow.SanitizeText(note, 500),
		Status:         boardstore.CostRequested,
		RequestedAt:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	costs = append([]boardstore.CostRequest{req}, costs...)
	if err := r.store.SaveCostRequests(ctx, costs); err != nil {
		return nil, err
	}
	return &req, nil
}

// Transition moves a cost request to the target status. Forward moves stamp
// the matching timestamp; a revert to requested clears the approval stamp.
// A paid request refuses every further transition.
func (r *Costs) Transition(ctx context.Context, id string, target boardstore.CostStatus) (*boardstore.CostRequest, error) {
	switch target {
	case boardstore.CostRequested, boardstore.CostApproved, boardstore.CostPaid:
	default:
		return nil, &ValidationError{Field: "status", Reason: "unknown status: " + string(target)}
	}

	costs := r.store.LoadCostRequests(ctx)
	for i := range costs {
		if costs[i].ID != id {
			continue
		}
		if workflow.TerminalCostStatus(costs[i].Status) {
			return nil, &TerminalStateError{ID: id, Status: costs[i].Status}
		}
		if !workflow.AllowedCostTransition(costs[i].Status, target) {
			return nil, &PreconditionError{Reason: "cannot move cost request from " + string(costs[i].Status) + " to " + string(target)}
		}
		now := r.now()
		costs[i].Status = target
		switch target {
		case boardstore.CostRequested:
			costs[i].ApprovedAt = nil
		case boardstore.CostApproved:
			stamp := now
			costs[i].ApprovedAt = &stamp
		case boardstore.CostPaid:
			stamp := now
			costs[i].PaidAt = &stamp
		}
		costs[i].UpdatedAt = now
		if err := r.store.SaveCostRequests(ctx, costs); err != nil {
			return nil, err
		}
		return &costs[i], nil
	}
	return nil, &NotFoundError{Kind: "cost request", ID: id}
}

// Delete removes a cost request. Paid requests are retained for history and
// cannot be deleted.
func (r *Costs) Delete(ctx context.Context, id string) error {
	costs := r.store.LoadCostRequests(ctx)
	for i := range costs {
		if costs[i].ID != id {
			continue
		}
		if workflow.TerminalCostStatus(costs[i].Status) {
			return &TerminalStateError{ID: id, Status: costs[i].Status}
		}
		costs = append(costs[:i], costs[i+1:]...)
		return r.store.SaveCostRequests(ctx, costs)
	}
	return &NotFoundError{Kind: "cost request", ID: id}
}
