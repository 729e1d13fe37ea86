// Package integrity computes reverse-reference counts across the board's
// collections. It is pure: every function operates on already-loaded
// records and is recomputed on each call, so a reload can never leave a
// stale cache behind a deletion check.
package integrity

import "github.com/gmnfield/opsboard/pkg/boardstore"

// RefCounts is the number of records in each collection that reference a
// technician. A technician may only be deleted when all three are zero.
type RefCounts struct {
	WorkOrders   int `json:"workOrderRefs"`
	CostRequests int `json:"costRequestRefs"`
	Proposals    int `json:"proposalRefs"`
}

// Total returns the combined reference count.
func (r RefCounts) Total() int {
	return r.WorkOrders + r.CostRequests + r.Proposals
}

// TechnicianRefs counts the work orders, cost requests and proposals that
// reference the technician. Proposals count both the technician and helper
// slots.
func TechnicianRefs(techID string, workOrders []boardstore.WorkOrder, costs []boardstore.CostRequest, proposals []boardstore.Proposal) RefCounts {
	var refs RefCounts

	for i := range workOrders {
		if workOrders[i].TechnicianID == techID {
			refs.WorkOrders++
		}
	}
	for i := range costs {
		if costs[i].TechnicianID == techID {
			refs.CostRequests++
		}
	}
	for i := range proposals {
		if proposals[i].TechnicianID == techID {
			refs.Proposals++
		}
		if proposals[i].HelperID == techID {
			refs.Proposals++
		}
	}

	return refs
}

// CanDelete reports whether the technician is unreferenced and may be
// removed. Deletion of a referenced technician must be refused; blacklisting
// is the integrity-preserving alternative.
func CanDelete(techID string, workOrders []boardstore.WorkOrder, costs []boardstore.CostRequest, proposals []boardstore.Proposal) bool {
	return TechnicianRefs(techID, workOrders, costs, proposals).Total() == 0
}

// UsageByTechnician returns reference counts for every technician id that
// appears in any collection. Ids of removed technicians still show up here;
// the caller decides how to render the dangling references.
func UsageByTechnician(workOrders []boardstore.WorkOrder, costs []boardstore.CostRequest, proposals []boardstore.Proposal) map[string]RefCounts {
	usage := make(map[string]RefCounts)

	bump := func(id string, f func(*RefCounts)) {
		if id == "" {
			return
		}
		refs := usage[id]
		f(&refs)
		usage[id] = refs
	}

	for i := range workOrders {
		bump(workOrders[i].TechnicianID, func(r *RefCounts) { r.WorkOrders++ })
	}
	for i := range costs {
		bump(costs[i].TechnicianID, func(r *RefCounts) { r.CostRequests++ })
	}
	for i := range proposals {
		bump(proposals[i].TechnicianID, func(r *RefCounts) { r.Proposals++ })
		bump(proposals[i].HelperID, func(r *RefCounts) { r.Proposals++ })
	}

	return usage
}

// OrphanFiles returns file records whose work order no longer resolves.
// Orphans are surfaced for manual resolution, never deleted automatically.
func OrphanFiles(files []boardstore.FileRecord, workOrders []boardstore.WorkOrder) []boardstore.FileRecord {
	ids := make(map[string]struct{}, len(workOrders))
	for i := range workOrders {
		ids[workOrders[i].ID] = struct{}{}
	}

	var orphans []boardstore.FileRecord
	for i := range files {
		if files[i].WorkOrderID == "" {
			continue
		}
		if _, ok := ids[files[i].WorkOrderID]; !ok {
			orphans = append(orphans, files[i])
		}
	}
	return orphans
}
