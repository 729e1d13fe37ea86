package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gmnfield/opsboard/internal/integrity"
	"github.com/gmnfield/opsboard/internal/workflow"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// Technicians is the technician repository.
type Technicians struct {
	store *boardstore.Client
	now   func() time.Time
}

// NewTechnicians creates a technician repository over the given store.
func NewTechnicians(store *boardstore.Client) *Technicians {
	return &Technicians{store: store, now: time.Now}
}

// TechnicianForm carries operator input for creating or editing a
// technician. Trade and TradeOther follow the trade picker: a custom trade
// is stored as "Other: <text>".
type TechnicianForm struct {
	Name             string
	Trade            string
	TradeOther       string
	Phone            string
	Email            string
	City             string
	State            string
	JobsDone         int
	RevenueGenerated float64
}

// List returns all technicians, newest first.
func (r *Technicians) List(ctx context.Context) []boardstore.Technician {
	return r.store.LoadTechnicians(ctx)
}

// Get returns the technician with the given id.
func (r *Technicians) Get(ctx context.Context, id string) (*boardstore.Technician, error) {
	techs := r.store.LoadTechnicians(ctx)
	for i := range techs {
		if techs[i].ID == id {
			return &techs[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "technician", ID: id}
}

// Upsert creates a technician (empty id) or edits an existing one.
// Duplicate detection runs before every write: a strong name+phone match, or
// a name+trade+city match when neither record has a phone, rejects the
// write. Editing preserves the blacklist flag and reason.
func (r *Technicians) Upsert(ctx context.Context, id string, form TechnicianForm) (*boardstore.Technician, error) {
	name := workflow.SanitizeText(form.Name, 240)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if form.JobsDone < 0 {
		return nil, &ValidationError{Field: "jobsDone", Reason: "must be >= 0"}
	}
	if form.RevenueGenerated < 0 {
		return nil, &ValidationError{Field: "revenueGenerated", Reason: "must be >= 0"}
	}

	candidate := boardstore.Technician{
		Name:             name,
		Trade:            workflow.ResolveTrade(form.Trade, form.TradeOther),
		Phone:            workflow.NormalizePhone(form.Phone),
		Email:            workflow.SanitizeText(form.Email, 240),
		City:             workflow.SanitizeText(form.City, 120),
		State:            workflow.SanitizeText(form.State, 60),
		JobsDone:         form.JobsDone,
		RevenueGenerated: form.RevenueGenerated,
	}

	techs := r.store.LoadTechnicians(ctx)
	if match := workflow.FindDuplicate(techs, candidate, id); match != nil {
		return nil, &DuplicateTechnicianError{Name: name, ExistingID: match.ID}
	}

	now := r.now()
	if id == "" {
		candidate.ID = uuid.New().String()
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		techs = append([]boardstore.Technician{candidate}, techs...)
		if err := r.store.SaveTechnicians(ctx, techs); err != nil {
			return nil, err
		}
		return &candidate, nil
	}

	for i := range techs {
		if techs[i].ID != id {
			continue
		}
		candidate.ID = techs[i].ID
		candidate.CreatedAt = techs[i].CreatedAt
		candidate.Blacklisted = techs[i].Blacklisted
		candidate.BlacklistReason = techs[i].BlacklistReason
		candidate.UpdatedAt = now
		techs[i] = candidate
		if err := r.store.SaveTechnicians(ctx, techs); err != nil {
			return nil, err
		}
		return &techs[i], nil
	}
	return nil, &NotFoundError{Kind: "technician", ID: id}
}

// Delete removes a technician, but only if nothing references it. The
// integrity engine recounts references on every attempt; a referenced
// technician is refused with the counts so the operator can blacklist
// instead, keeping history consistent.
func (r *Technicians) Delete(ctx context.Context, id string) error {
	techs := r.store.LoadTechnicians(ctx)
	idx := -1
	for i := range techs {
		if techs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Kind: "technician", ID: id}
	}

	refs := integrity.TechnicianRefs(id,
		r.store.LoadWorkOrders(ctx),
		r.store.LoadCostRequests(ctx),
		r.store.LoadProposals(ctx))
	if refs.Total() > 0 {
		return &ReferencedEntityError{TechnicianID: id, Refs: refs}
	}

	techs = append(techs[:idx], techs[idx+1:]...)
	return r.store.SaveTechnicians(ctx, techs)
}

// SetBlacklist toggles the blacklist flag. Blacklisting requires a
// non-empty reason after trimming; clearing the flag clears the reason.
// The operation is idempotent.
func (r *Technicians) SetBlacklist(ctx context.Context, id string, value bool, reason string) (*boardstore.Technician, error) {
	reason = workflow.SanitizeText(reason, 200)
	if value && strings.TrimSpace(reason) == "" {
		return nil, &ReasonRequiredError{TechnicianID: id}
	}

	techs := r.store.LoadTechnicians(ctx)
	for i := range techs {
		if techs[i].ID != id {
			continue
		}
		techs[i].Blacklisted = value
		if value {
			techs[i].BlacklistReason = reason
		} else {
			techs[i].BlacklistReason = ""
		}
		techs[i].UpdatedAt = r.now()
		if err := r.store.SaveTechnicians(ctx, techs); err != nil {
			return nil, err
		}
		return &techs[i], nil
	}
	return nil, &NotFoundError{Kind: "technician", ID: id}
}
