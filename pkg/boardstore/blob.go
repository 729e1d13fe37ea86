package boardstore

import (
	"context"
	"fmt"
)

// Blob store
//
// Uploaded file bytes live outside the collections, keyed by the owning
// FileRecord's id. Ids are generated once and never reused, so blob writes
// do not race each other. A FileRecord write and its blob write are two
// independent operations with no joint atomicity: a record whose blob is
// absent is a "preview unavailable" condition, not a fatal error.

// PutBlob stores a file's bytes under the given id.
func (c *Client) PutBlob(ctx context.Context, id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("blob id cannot be empty")
	}
	if err := c.rdb.Set(ctx, BlobKey(c.instanceName, id), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", id, err)
	}
	return nil
}

// GetBlob retrieves a file's bytes by id.
// Returns (nil, redis.Nil) if the blob doesn't exist; use IsNotFound() to
// check for it. Callers must tolerate absence.
func (c *Client) GetBlob(ctx context.Context, id string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, BlobKey(c.instanceName, id)).Bytes()
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", id, err)
	}
	return data, nil
}

// DeleteBlob removes a file's bytes. Deleting an absent blob is a no-op.
func (c *Client) DeleteBlob(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, BlobKey(c.instanceName, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", id, err)
	}
	return nil
}
