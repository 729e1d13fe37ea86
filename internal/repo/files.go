package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gmnfield/opsboard/internal/integrity"
	"github.com/gmnfield/opsboard/internal/workflow"
	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// Files is the attachment repository. Metadata lives in the files
// collection; content lives in a per-file blob key. The two writes are not
// atomic: Attach writes metadata first, so a crash between the writes
// leaves a record whose content reads as unavailable rather than a blob no
// record points at.
type Files struct {
	store *boardstore.Client
	now   func() time.Time
}

// NewFiles creates a file repository over the given store.
func NewFiles(store *boardstore.Client) *Files {
	return &Files{store: store, now: time.Now}
}

// List returns all file records, newest first.
func (r *Files) List(ctx context.Context) []boardstore.FileRecord {
	return r.store.LoadFileRecords(ctx)
}

// ForWorkOrder returns the file records attached to one work order.
func (r *Files) ForWorkOrder(ctx context.Context, workOrderID string) []boardstore.FileRecord {
	var out []boardstore.FileRecord
	for _, f := range r.store.LoadFileRecords(ctx) {
		if f.WorkOrderID == workOrderID {
			out = append(out, f)
		}
	}
	return out
}

// Attach stores a file against a work order. The work order must exist at
// attach time; the record survives the work order's later deletion and is
// then reported by Orphans.
func (r *Files) Attach(ctx context.Context, workOrderID, name, mimeType string, content []byte) (*boardstore.FileRecord, error) {
	name = workflow.SanitizeText(name, 240)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "cannot be empty"}
	}
	if len(content) == 0 {
		return nil, &ValidationError{Field: "content", Reason: "cannot be empty"}
	}

	orders := r.store.LoadWorkOrders(ctx)
	found := false
	for i := range orders {
		if orders[i].ID == workOrderID {
			found = true
			break
		}
	}
	if !found {
		return nil, &NotFoundError{Kind: "work order", ID: workOrderID}
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	now := r.now()
	rec := boardstore.FileRecord{
		ID:          uuid.New().String(),
		WorkOrderID: workOrderID,
		Name:        name,
		MimeType:    mimeType,
		ByteSize:    int64(len(content)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	files := r.store.LoadFileRecords(ctx)
	files = append([]boardstore.FileRecord{rec}, files...)
	if err := r.store.SaveFileRecords(ctx, files); err != nil {
		return nil, err
	}
	if err := r.store.PutBlob(ctx, rec.ID, content); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Content returns a file's bytes. A record whose blob is missing is not an
// error to the caller's flow control: ok is false and the record should be
// shown as preview unavailable.
func (r *Files) Content(ctx context.Context, id string) (data []byte, ok bool, err error) {
	files := r.store.LoadFileRecords(ctx)
	found := false
	for i := range files {
		if files[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return nil, false, &NotFoundError{Kind: "file", ID: id}
	}
	data, err = r.store.GetBlob(ctx, id)
	if err != nil {
		if boardstore.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Delete removes a file record and its blob. The metadata write lands
// first; a leftover blob from a crash in between is unreachable and
// harmless.
func (r *Files) Delete(ctx context.Context, id string) error {
	files := r.store.LoadFileRecords(ctx)
	for i := range files {
		if files[i].ID != id {
			continue
		}
		files = append(files[:i], files[i+1:]...)
		if err := r.store.SaveFileRecords(ctx, files); err != nil {
			return err
		}
		return r.store.DeleteBlob(ctx, id)
	}
	return &NotFoundError{Kind: "file", ID: id}
}

// Orphans returns file records whose work order no longer exists. They are
// surfaced for operator review, never deleted automatically.
func (r *Files) Orphans(ctx context.Context) []boardstore.FileRecord {
	return integrity.OrphanFiles(r.store.LoadFileRecords(ctx), r.store.LoadWorkOrders(ctx))
}
