// Package repo implements the entity repositories over the board store.
// Every mutation is a load → validate → mutate → save unit of work; the
// unit is synchronous, never blocks, and is not atomic across instances
// (whole-collection last write wins).
//
// All failures are expected, recoverable conditions returned as typed
// errors; nothing here panics or retries.
package repo

import (
	"fmt"

	"github.com/gmnfield/opsboard/internal/integrity"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// ValidationError reports a malformed or missing required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// PreconditionError reports a workflow precondition that is not met, such as
// requesting payment on a work order that is not completed.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

// DuplicateOpenRequestError reports an attempt to open a second cost request
// for a work order that already has one in requested or approved state.
type DuplicateOpenRequestError struct {
	WorkOrderID string
}

func (e *DuplicateOpenRequestError) Error() string {
	return fmt.Sprintf("an open payment request already exists for work order %s", e.WorkOrderID)
}

// DuplicateTechnicianError reports a technician create/edit that matched an
// existing record under the duplicate-detection heuristic.
type DuplicateTechnicianError struct {
	Name       string
	ExistingID string
}

func (e *DuplicateTechnicianError) Error() string {
	return fmt.Sprintf("duplicate technician: %q matches existing record %s", e.Name, e.ExistingID)
}

// ReferencedEntityError reports a technician deletion blocked by the
// integrity engine. It carries the reference counts so the caller can show
// the operator exactly what still points at the record.
type ReferencedEntityError struct {
	TechnicianID string
	Refs         integrity.RefCounts
}

func (e *ReferencedEntityError) Error() string {
	return fmt.Sprintf("technician %s is still referenced (work orders: %d, cost requests: %d, proposals: %d)",
		e.TechnicianID, e.Refs.WorkOrders, e.Refs.CostRequests, e.Refs.Proposals)
}

// ReasonRequiredError reports a blacklist toggle with no reason given.
type ReasonRequiredError struct {
	TechnicianID string
}

func (e *ReasonRequiredError) Error() string {
	return fmt.Sprintf("blacklisting technician %s requires a reason", e.TechnicianID)
}

// TerminalStateError reports an attempted transition out of a terminal
// workflow state.
type TerminalStateError struct {
	ID     string
	Status boardstore.CostStatus
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("cost request %s is %s; no further transitions are permitted", e.ID, e.Status)
}

// NotFoundError reports an id that did not resolve in its collection.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
