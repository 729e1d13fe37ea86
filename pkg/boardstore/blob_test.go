package boardstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobPutGetDelete(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	data := []byte("fake jpeg bytes")
	require.NoError(t, client.PutBlob(ctx, "file-1", data))

	got, err := client.GetBlob(ctx, "file-1")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, client.DeleteBlob(ctx, "file-1"))

	_, err = client.GetBlob(ctx, "file-1")
	assert.True(t, IsNotFound(err))
}

func TestBlobAbsentIsNotFatal(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	// Metadata pointing at a blob that was never written (crash between the
	// two independent writes) is a preview-unavailable condition.
	got, err := client.GetBlob(ctx, "never-written")
	assert.Nil(t, got)
	assert.True(t, IsNotFound(err))
}

func TestBlobRejectsEmptyID(t *testing.T) {
	client, _ := setupTestClient(t)
	err := client.PutBlob(context.Background(), "", []byte("x"))
	assert.Error(t, err)
}

func TestDeleteAbsentBlobIsNoop(t *testing.T) {
	client, _ := setupTestClient(t)
	assert.NoError(t, client.DeleteBlob(context.Background(), "missing"))
}
