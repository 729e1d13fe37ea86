package watch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

func setupClient(t *testing.T) *boardstore.Client {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	client, err := boardstore.NewClient(&redis.Options{Addr: mr.Addr()}, "test-instance")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func saveTech(t *testing.T, client *boardstore.Client, name string) {
	t.Helper()
	now := time.Now()
	err := client.SaveTechnicians(context.Background(), []boardstore.Technician{{
		ID: "t-" + name, Name: name, CreatedAt: now, UpdatedAt: now,
	}})
	require.NoError(t, err)
}

func TestLoadSnapshot(t *testing.T) {
	client := setupClient(t)
	saveTech(t, client, "Maria Ortiz")

	snap := LoadSnapshot(context.Background(), client)
	assert.Len(t, snap.Techs, 1)
	assert.Empty(t, snap.WorkOrders)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestWatcherDeliversOnChange(t *testing.T) {
	client := setupClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w, err := New(ctx, client, time.Hour)
	require.NoError(t, err)
	defer w.Close()

	// initial snapshot is empty
	select {
	case snap := <-w.Snapshots():
		assert.Empty(t, snap.Techs)
	case <-ctx.Done():
		t.Fatal("no initial snapshot")
	}

	// give the subscription a moment to be established
	time.Sleep(50 * time.Millisecond)
	saveTech(t, client, "Maria Ortiz")

	select {
	case snap := <-w.Snapshots():
		assert.Len(t, snap.Techs, 1)
	case <-ctx.Done():
		t.Fatal("no refreshed snapshot after change")
	}
}

func TestWatcherTick(t *testing.T) {
	client := setupClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w, err := New(ctx, client, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	// initial snapshot, then at least one tick-driven refresh with no writes
	for i := 0; i < 2; i++ {
		select {
		case <-w.Snapshots():
		case <-ctx.Done():
			t.Fatalf("missing snapshot %d", i)
		}
	}
}

func TestWatcherClose(t *testing.T) {
	client := setupClient(t)
	w, err := New(context.Background(), client, time.Hour)
	require.NoError(t, err)

	<-w.Snapshots()
	w.Close()
	w.Close() // idempotent

	select {
	case _, ok := <-w.Snapshots():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot channel not closed")
	}
}

func TestWaitForCollectionChange(t *testing.T) {
	client := setupClient(t)
	ctx := context.Background()

	t.Run("times out with no writes", func(t *testing.T) {
		_, err := WaitForCollectionChange(ctx, client, boardstore.CollectionTechnicians, 100*time.Millisecond)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})

	t.Run("sees the named collection", func(t *testing.T) {
		done := make(chan struct{})
		go func() {
			defer close(done)
			time.Sleep(50 * time.Millisecond)
			saveTech(t, client, "Maria Ortiz")
		}()

		name, err := WaitForCollectionChange(ctx, client, boardstore.CollectionTechnicians, 2*time.Second)
		require.NoError(t, err)
		assert.Equal(t, boardstore.CollectionTechnicians, name)
		<-done
	})

	t.Run("ignores other collections", func(t *testing.T) {
		done := make(chan struct{})
		go func() {
			defer close(done)
			time.Sleep(50 * time.Millisecond)
			saveTech(t, client, "Sam Reed")
		}()

		_, err := WaitForCollectionChange(ctx, client, boardstore.CollectionWorkOrders, 300*time.Millisecond)
		require.Error(t, err)
		<-done
	})
}
