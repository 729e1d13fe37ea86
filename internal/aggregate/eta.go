package aggregate

import (
	"time"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// ETABuckets partitions active work orders by how their scheduled ETA
// relates to now. Orders without a resolvable instant, and orders in a
// terminal status, appear in no bucket.
type ETABuckets struct {
	Overdue  []boardstore.WorkOrder
	DueToday []boardstore.WorkOrder
	Upcoming []boardstore.WorkOrder
}

// sameLocalDay compares two instants on the local calendar, not a 24h span.
func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// BucketByETA partitions the active work orders with a scheduled instant.
// An instant already behind now is overdue even when it is still today;
// DueToday holds the rest of today, Upcoming the later days.
func BucketByETA(orders []boardstore.WorkOrder, now time.Time) ETABuckets {
	var b ETABuckets
	for _, wo := range orders {
		if !wo.Status.Active() {
			continue
		}
		eta, ok := wo.ETA()
		if !ok {
			continue
		}
		switch {
		case eta.Before(now):
			b.Overdue = append(b.Overdue, wo)
		case sameLocalDay(eta, now):
			b.DueToday = append(b.DueToday, wo)
		default:
			b.Upcoming = append(b.Upcoming, wo)
		}
	}
	return b
}
