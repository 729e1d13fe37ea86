package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// setupStore creates a board store client connected to a miniredis instance
func setupStore(t *testing.T) *boardstore.Client {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := boardstore.NewClient(&redis.Options{Addr: mr.Addr()}, "test-instance")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

var testClock = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testClock }

// seedWorkOrder creates a work order through the repository and returns it.
func seedWorkOrder(t *testing.T, store *boardstore.Client, status boardstore.WorkOrderStatus) *boardstore.WorkOrder {
	t.Helper()
	orders := NewWorkOrders(store)
	orders.now = fixedNow
	wo, err := orders.Create(context.Background(), WorkOrderForm{
		WONumber:    "WO-7001",
		Client:      "Hilltop Grocers",
		Trade:       "Electrical",
		City:        "Denver",
		NotToExceed: 900,
		Status:      status,
	})
	require.NoError(t, err)
	return wo
}

// seedTechnician creates a technician through the repository and returns it.
func seedTechnician(t *testing.T, store *boardstore.Client, name, trade, phone string) *boardstore.Technician {
	t.Helper()
	techs := NewTechnicians(store)
	techs.now = fixedNow
	tech, err := techs.Upsert(context.Background(), "", TechnicianForm{
		Name:  name,
		Trade: trade,
		Phone: phone,
	})
	require.NoError(t, err)
	return tech
}
