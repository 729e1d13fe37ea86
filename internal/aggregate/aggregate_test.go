package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

var clock = time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

func wo(id string, status boardstore.WorkOrderStatus, eta *time.Time) boardstore.WorkOrder {
	return boardstore.WorkOrder{ID: id, WONumber: "WO-" + id, Client: "Client " + id, Status: status, ETAAt: eta, UpdatedAt: clock}
}

func at(d time.Duration) *time.Time {
	t := clock.Add(d)
	return &t
}

func TestBucketByETA(t *testing.T) {
	orders := []boardstore.WorkOrder{
		wo("1", boardstore.WorkOrderWaiting, at(-48*time.Hour)),   // overdue
		wo("2", boardstore.WorkOrderInProgress, at(-time.Hour)),   // earlier today: overdue
		wo("3", boardstore.WorkOrderWaiting, at(4*time.Hour)),     // later today
		wo("4", boardstore.WorkOrderWaiting, at(48*time.Hour)),    // upcoming
		wo("5", boardstore.WorkOrderCompleted, at(-48*time.Hour)), // terminal, never overdue
		wo("6", boardstore.WorkOrderWaiting, nil),                 // no instant, no bucket
	}

	b := BucketByETA(orders, clock)
	require.Len(t, b.Overdue, 2)
	assert.Equal(t, "1", b.Overdue[0].ID)
	assert.Equal(t, "2", b.Overdue[1].ID)
	require.Len(t, b.DueToday, 1)
	assert.Equal(t, "3", b.DueToday[0].ID)
	require.Len(t, b.Upcoming, 1)
	assert.Equal(t, "4", b.Upcoming[0].ID)
}

func TestCountDashboard(t *testing.T) {
	orders := []boardstore.WorkOrder{
		wo("1", boardstore.WorkOrderWaiting, nil),
		wo("2", boardstore.WorkOrderWaiting, nil),
		wo("3", boardstore.WorkOrderPaid, nil),
	}
	costs := []boardstore.CostRequest{
		{ID: "c1", WorkOrderID: "1", Status: boardstore.CostRequested},
		{ID: "c2", WorkOrderID: "2", Status: boardstore.CostApproved},
		{ID: "c3", WorkOrderID: "3", Status: boardstore.CostPaid},
	}
	proposals := []boardstore.Proposal{{ID: "p1", WorkOrderID: "1"}}
	files := []boardstore.FileRecord{
		{ID: "f1", WorkOrderID: "1", Name: "a.jpg"},
		{ID: "f2", WorkOrderID: "gone", Name: "b.jpg"},
	}

	c := CountDashboard(orders, costs, proposals, files)
	assert.Equal(t, 2, c.WorkOrdersByStatus[boardstore.WorkOrderWaiting])
	assert.Equal(t, 1, c.WorkOrdersByStatus[boardstore.WorkOrderPaid])
	assert.Equal(t, 2, c.UnpaidCosts)
	assert.Equal(t, 1, c.OrphanFiles)
	assert.Equal(t, 2, c.MissingProposals)
}

func TestCountTechnicians(t *testing.T) {
	techs := []boardstore.Technician{
		{ID: "t1", Name: "A", JobsDone: 12, RevenueGenerated: 8400},
		{ID: "t2", Name: "B", JobsDone: 3, RevenueGenerated: 900, Blacklisted: true, BlacklistReason: "x"},
	}
	s := CountTechnicians(techs)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Blacklisted)
	assert.Equal(t, 15, s.JobsDone)
	assert.InDelta(t, 9300, s.Revenue, 0.001)
}

func TestRecentActivity(t *testing.T) {
	t.Run("window and cap", func(t *testing.T) {
		var orders []boardstore.WorkOrder
		for i := 0; i < 8; i++ {
			w := wo(string(rune('a'+i)), boardstore.WorkOrderWaiting, nil)
			w.UpdatedAt = clock.Add(-time.Duration(i) * time.Hour)
			orders = append(orders, w)
		}
		stale := wo("z", boardstore.WorkOrderWaiting, nil)
		stale.UpdatedAt = clock.Add(-72 * time.Hour)
		orders = append(orders, stale)

		feed := RecentActivity(orders, nil, nil, nil, nil, clock)
		require.Len(t, feed, 6)
		assert.Equal(t, "WO-a Client a", feed[0].Label)
		for _, it := range feed {
			assert.True(t, it.At.After(clock.Add(-24*time.Hour)))
		}
	})

	t.Run("falls back past the window when nothing is recent", func(t *testing.T) {
		stale := wo("z", boardstore.WorkOrderWaiting, nil)
		stale.UpdatedAt = clock.Add(-72 * time.Hour)

		feed := RecentActivity([]boardstore.WorkOrder{stale}, nil, nil, nil, nil, clock)
		require.Len(t, feed, 1)
	})

	t.Run("mixes collections newest first", func(t *testing.T) {
		order := wo("1", boardstore.WorkOrderWaiting, nil)
		order.UpdatedAt = clock.Add(-2 * time.Hour)
		tech := boardstore.Technician{ID: "t1", Name: "Maria Ortiz", UpdatedAt: clock.Add(-time.Hour)}

		feed := RecentActivity([]boardstore.WorkOrder{order}, []boardstore.Technician{tech}, nil, nil, nil, clock)
		require.Len(t, feed, 2)
		assert.Equal(t, "technician", feed[0].Kind)
		assert.Equal(t, "work order", feed[1].Kind)
	})
}

func TestMergeSchedule(t *testing.T) {
	orders := []boardstore.WorkOrder{
		wo("1", boardstore.WorkOrderWaiting, at(-time.Hour)),  // overdue, high priority
		wo("2", boardstore.WorkOrderWaiting, at(3*time.Hour)), // normal
		wo("3", boardstore.WorkOrderPaid, at(time.Hour)),      // terminal, excluded
	}
	events := []boardstore.CalendarEvent{
		{ID: "e1", Title: "Permit inspection", DateTime: clock.Add(time.Hour), Priority: boardstore.PriorityLow},
	}

	entries := MergeSchedule(orders, events, clock)
	require.Len(t, entries, 3)
	assert.Equal(t, "1", entries[0].WorkOrderID)
	assert.Equal(t, boardstore.PriorityHigh, entries[0].Priority)
	assert.Equal(t, "e1", entries[1].EventID)
	assert.Equal(t, "2", entries[2].WorkOrderID)
	assert.Equal(t, boardstore.PriorityNormal, entries[2].Priority)
}
