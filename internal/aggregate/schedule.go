package aggregate

import (
	"sort"
	"time"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// ScheduleEntry is one row of the unified schedule: either a work order ETA
// or a standalone calendar event. Exactly one of WorkOrderID/EventID is set.
type ScheduleEntry struct {
	At          time.Time
	Title       string
	Priority    boardstore.EventPriority
	WorkOrderID string
	EventID     string
}

// MergeSchedule folds active work order ETAs and calendar events into one
// time-ordered listing. Work orders and events stay separate records in the
// store; this merge exists only at read time. Work order rows inherit high
// priority when overdue, normal otherwise.
func MergeSchedule(orders []boardstore.WorkOrder, events []boardstore.CalendarEvent, now time.Time) []ScheduleEntry {
	var entries []ScheduleEntry
	for _, wo := range orders {
		if !wo.Status.Active() {
			continue
		}
		eta, ok := wo.ETA()
		if !ok {
			continue
		}
		prio := boardstore.PriorityNormal
		if eta.Before(now) {
			prio = boardstore.PriorityHigh
		}
		entries = append(entries, ScheduleEntry{
			At:          eta,
			Title:       wo.WONumber + " " + wo.Client,
			Priority:    prio,
			WorkOrderID: wo.ID,
		})
	}
	for _, ev := range events {
		entries = append(entries, ScheduleEntry{
			At:       ev.DateTime,
			Title:    ev.Title,
			Priority: ev.Priority,
			EventID:  ev.ID,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].At.Before(entries[j].At) })
	return entries
}
