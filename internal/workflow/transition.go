// Package workflow holds the pure business rules of the dispatch board:
// the cost request state machine, technician duplicate detection, trade
// eligibility, text normalization and proposal pricing. Everything here is
// side-effect free and operates on already-loaded records; persistence and
// typed failures live in the repositories.
package workflow

import "github.com/gmnfield/opsboard/pkg/boardstore"

// Cost request AP state machine
//
//	requested → approved → paid
//
// A revert back to requested is allowed from requested or approved for
// corrections; paid is terminal.

// TerminalCostStatus reports whether no further transition is permitted.
func TerminalCostStatus(s boardstore.CostStatus) bool {
	return s == boardstore.CostPaid
}

// AllowedCostTransition reports whether a cost request may move from one
// status to the target.
func AllowedCostTransition(from, to boardstore.CostStatus) bool {
	switch to {
	case boardstore.CostApproved:
		return from == boardstore.CostRequested
	case boardstore.CostPaid:
		return from == boardstore.CostApproved
	case boardstore.CostRequested:
		return from.Open()
	default:
		return false
	}
}

// HasOpenRequest reports whether any cost request for the work order is
// still awaiting AP action. At most one open request per work order may
// exist at a time.
func HasOpenRequest(costs []boardstore.CostRequest, workOrderID string) bool {
	for i := range costs {
		if costs[i].WorkOrderID == workOrderID && costs[i].Status.Open() {
			return true
		}
	}
	return false
}
