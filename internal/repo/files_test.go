package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

func TestFileAttach(t *testing.T) {
	t.Run("stores metadata and content", func(t *testing.T) {
		store := setupStore(t)
		files := NewFiles(store)
		files.now = fixedNow
		wo := seedWorkOrder(t, store, boardstore.WorkOrderWaiting)

		content := []byte("before photo bytes")
		rec, err := files.Attach(context.Background(), wo.ID, "before.jpg", "image/jpeg", content)
		require.NoError(t, err)
		assert.Equal(t, wo.ID, rec.WorkOrderID)
		assert.Equal(t, int64(len(content)), rec.ByteSize)

		data, ok, err := files.Content(context.Background(), rec.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, content, data)
	})

	t.Run("defaults the mime type", func(t *testing.T) {
		store := setupStore(t)
		files := NewFiles(store)
		wo := seedWorkOrder(t, store, boardstore.WorkOrderWaiting)

		rec, err := files.Attach(context.Background(), wo.ID, "notes.bin", "", []byte{1})
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", rec.MimeType)
	})

	t.Run("requires an existing work order", func(t *testing.T) {
		store := setupStore(t)
		_, err := NewFiles(store).Attach(context.Background(), "missing", "x.png", "image/png", []byte{1})
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		store := setupStore(t)
		wo := seedWorkOrder(t, store, boardstore.WorkOrderWaiting)
		_, err := NewFiles(store).Attach(context.Background(), wo.ID, "x.png", "image/png", nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func TestFileContentMissingBlob(t *testing.T) {
	store := setupStore(t)
	files := NewFiles(store)
	wo := seedWorkOrder(t, store, boardstore.WorkOrderWaiting)

	rec, err := files.Attach(context.Background(), wo.ID, "before.jpg", "image/jpeg", []byte("x"))
	require.NoError(t, err)

	// simulate a crash between the metadata and blob writes
	require.NoError(t, store.DeleteBlob(context.Background(), rec.ID))

	data, ok, err := files.Content(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestFileDelete(t *testing.T) {
	store := setupStore(t)
	files := NewFiles(store)
	wo := seedWorkOrder(t, store, boardstore.WorkOrderWaiting)

	rec, err := files.Attach(context.Background(), wo.ID, "before.jpg", "image/jpeg", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, files.Delete(context.Background(), rec.ID))
	assert.Empty(t, files.List(context.Background()))

	_, err = store.GetBlob(context.Background(), rec.ID)
	assert.True(t, boardstore.IsNotFound(err))
}

func TestFileOrphans(t *testing.T) {
	store := setupStore(t)
	files := NewFiles(store)
	orders := NewWorkOrders(store)
	wo := seedWorkOrder(t, store, boardstore.WorkOrderWaiting)

	rec, err := files.Attach(context.Background(), wo.ID, "before.jpg", "image/jpeg", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, files.Orphans(context.Background()))

	require.NoError(t, orders.Delete(context.Background(), wo.ID))

	orphans := files.Orphans(context.Background())
	require.Len(t, orphans, 1)
	assert.Equal(t, rec.ID, orphans[0].ID)

	// the record itself is never cascaded
	assert.Len(t, files.List(context.Background()), 1)
}
