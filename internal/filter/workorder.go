// Package filter narrows work order listings by command line criteria.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// Criteria defines filtering criteria for work orders.
// All filters are ANDed together, a work order must match ALL criteria to pass.
type Criteria struct {
	Status       string // Exact status match, empty = no filter
	Trade        string // Case-insensitive trade match, empty = no filter
	TechnicianID string // Exact assignment match, empty = no filter
	NumberGlob   string // Glob pattern for the WO number, empty = no filter
	Query        string // Case-insensitive substring over number, client, city and technician name
}

// Matches returns true if the work order matches all filter criteria.
// Empty criteria values are treated as "match all" for that criterion.
func (c *Criteria) Matches(wo *boardstore.WorkOrder) bool {
	if c.Status != "" && string(wo.Status) != c.Status {
		return false
	}
	if c.Trade != "" && !strings.EqualFold(wo.Trade, c.Trade) {
		return false
	}
	if c.TechnicianID != "" && wo.TechnicianID != c.TechnicianID {
		return false
	}
	if c.NumberGlob != "" {
		matched, err := filepath.Match(c.NumberGlob, wo.WONumber)
		if err != nil || !matched {
			return false
		}
	}
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		haystack := strings.ToLower(wo.WONumber + " " + wo.Client + " " + wo.City + " " + wo.TechnicianName)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.Status != "" || c.Trade != "" || c.TechnicianID != "" || c.NumberGlob != "" || c.Query != ""
}

// Apply returns the work orders that match, preserving input order.
func (c *Criteria) Apply(orders []boardstore.WorkOrder) []boardstore.WorkOrder {
	if !c.HasFilters() {
		return orders
	}
	kept := make([]boardstore.WorkOrder, 0, len(orders))
	for i := range orders {
		if c.Matches(&orders[i]) {
			kept = append(kept, orders[i])
		}
	}
	return kept
}
