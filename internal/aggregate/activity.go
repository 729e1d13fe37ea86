package aggregate

import (
	"sort"
	"time"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

const (
	activityWindow = 24 * time.Hour
	activityCap    = 6
)

// ActivityItem is one line of the recent-activity feed.
type ActivityItem struct {
	Kind  string
	Label string
	At    time.Time
}

// RecentActivity gathers the latest record touches across every collection,
// newest first, within a soft 24 hour window capped at six entries. When
// nothing happened inside the window the feed falls back to the newest
// entries overall so the board never looks dead.
func RecentActivity(
	orders []boardstore.WorkOrder,
	techs []boardstore.Technician,
	costs []boardstore.CostRequest,
	proposals []boardstore.Proposal,
	files []boardstore.FileRecord,
	now time.Time,
) []ActivityItem {
	var items []ActivityItem
	for i := range orders {
		items = append(items, ActivityItem{Kind: "work order", Label: orders[i].WONumber + " " + orders[i].Client, At: orders[i].UpdatedAt})
	}
	for i := range techs {
		items = append(items, ActivityItem{Kind: "technician", Label: techs[i].Name, At: techs[i].UpdatedAt})
	}
	for i := range costs {
		items = append(items, ActivityItem{Kind: "cost request", Label: costs[i].WONumber + " " + string(costs[i].Status), At: costs[i].UpdatedAt})
	}
	for i := range proposals {
		items = append(items, ActivityItem{Kind: "proposal", Label: proposals[i].WONumber, At: proposals[i].UpdatedAt})
	}
	for i := range files {
		items = append(items, ActivityItem{Kind: "file", Label: files[i].Name, At: files[i].UpdatedAt})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].At.After(items[j].At) })

	cutoff := now.Add(-activityWindow)
	recent := items[:0:0]
	for _, it := range items {
		if it.At.After(cutoff) {
			recent = append(recent, it)
		}
	}
	if len(recent) == 0 {
		recent = items
	}
	if len(recent) > activityCap {
		recent = recent[:activityCap]
	}
	return recent
}
