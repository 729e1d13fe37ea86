package aggregate

import (
	"github.com/gmnfield/opsboard/internal/integrity"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// Counters are the dashboard headline numbers.
type Counters struct {
	WorkOrdersByStatus map[boardstore.WorkOrderStatus]int
	UnpaidCosts        int
	OrphanFiles        int
	MissingProposals   int
}

// CountDashboard computes the headline counters. MissingProposals counts
// work orders with no proposal record at all, regardless of status.
func CountDashboard(
	orders []boardstore.WorkOrder,
	costs []boardstore.CostRequest,
	proposals []boardstore.Proposal,
	files []boardstore.FileRecord,
) Counters {
	c := Counters{WorkOrdersByStatus: make(map[boardstore.WorkOrderStatus]int)}

	proposed := make(map[string]bool, len(proposals))
	for i := range proposals {
		proposed[proposals[i].WorkOrderID] = true
	}

	for i := range orders {
		c.WorkOrdersByStatus[orders[i].Status]++
		if !proposed[orders[i].ID] {
			c.MissingProposals++
		}
	}
	for i := range costs {
		if costs[i].Status != boardstore.CostPaid {
			c.UnpaidCosts++
		}
	}
	c.OrphanFiles = len(integrity.OrphanFiles(files, orders))
	return c
}

// TechStats are the roster headline numbers. Revenue and job counts are
// operator-entered figures summed as-is, not derived from work orders.
type TechStats struct {
	Total       int
	Blacklisted int
	JobsDone    int
	Revenue     float64
}

// CountTechnicians sums the roster stats.
func CountTechnicians(techs []boardstore.Technician) TechStats {
	var s TechStats
	for i := range techs {
		s.Total++
		if techs[i].Blacklisted {
			s.Blacklisted++
		}
		s.JobsDone += techs[i].JobsDone
		s.Revenue += techs[i].RevenueGenerated
	}
	return s
}

// UsageByTechnician re-exposes the integrity engine's reference counts for
// display next to each roster entry.
func UsageByTechnician(
	orders []boardstore.WorkOrder,
	costs []boardstore.CostRequest,
	proposals []boardstore.Proposal,
) map[string]integrity.RefCounts {
	return integrity.UsageByTechnician(orders, costs, proposals)
}
