// Package watch reduces snapshot staleness. Instances never coordinate
// writes; the best they can do is re-read quickly. A Watcher re-loads the
// full board snapshot whenever a change notification arrives and on a
// periodic tick standing in for the regain-focus refresh a windowed UI
// would have.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// DefaultRefreshInterval is the fallback tick between unconditional
// re-reads when no notification arrives.
const DefaultRefreshInterval = 30 * time.Second

// Snapshot is one consistent-as-of-its-reads view of every collection.
// Reads are sequential, not atomic; a concurrent writer can interleave.
type Snapshot struct {
	WorkOrders []boardstore.WorkOrder
	Techs      []boardstore.Technician
	Costs      []boardstore.CostRequest
	Proposals  []boardstore.Proposal
	Files      []boardstore.FileRecord
	Calendar   []boardstore.CalendarEvent
	LoadedAt   time.Time
}

// LoadSnapshot reads every collection once.
func LoadSnapshot(ctx context.Context, client *boardstore.Client) Snapshot {
	return Snapshot{
		WorkOrders: client.LoadWorkOrders(ctx),
		Techs:      client.LoadTechnicians(ctx),
		Costs:      client.LoadCostRequests(ctx),
		Proposals:  client.LoadProposals(ctx),
		Files:      client.LoadFileRecords(ctx),
		Calendar:   client.LoadCalendarEvents(ctx),
		LoadedAt:   time.Now(),
	}
}

// Watcher delivers refreshed snapshots on its channel. Close it when done.
type Watcher struct {
	snapshots <-chan Snapshot
	errors    <-chan error
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Snapshots returns the channel of refreshed snapshots.
func (w *Watcher) Snapshots() <-chan Snapshot {
	return w.snapshots
}

// Errors returns the channel of subscription errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and releases its subscription.
func (w *Watcher) Close() {
	w.closeOnce.Do(w.cancel)
}

// New subscribes to collection change events and starts delivering
// snapshots: one immediately, then one per notification or tick. A zero
// interval uses DefaultRefreshInterval.
func New(ctx context.Context, client *boardstore.Client, interval time.Duration) (*Watcher, error) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	sub, err := client.SubscribeCollectionEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to collection events: %w", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	snapshots := make(chan Snapshot)
	errors := make(chan error, 1)

	go func() {
		defer close(snapshots)
		defer close(errors)
		defer sub.Close()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		deliver := func() bool {
			select {
			case snapshots <- LoadSnapshot(watchCtx, client):
				return true
			case <-watchCtx.Done():
				return false
			}
		}

		if !deliver() {
			return
		}
		for {
			select {
			case <-watchCtx.Done():
				return
			case _, ok := <-sub.Events():
				if !ok {
					return
				}
				if !deliver() {
					return
				}
			case <-ticker.C:
				if !deliver() {
					return
				}
			case err, ok := <-sub.Errors():
				if !ok {
					return
				}
				select {
				case errors <- err:
				case <-watchCtx.Done():
					return
				}
			}
		}
	}()

	return &Watcher{snapshots: snapshots, errors: errors, cancel: cancel}, nil
}

// WaitForCollectionChange blocks until a change notification names the
// given collection (any collection when empty) or the timeout passes.
// Returns the collection name that changed.
func WaitForCollectionChange(ctx context.Context, client *boardstore.Client, collection string, timeout time.Duration) (string, error) {
	sub, err := client.SubscribeCollectionEvents(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to subscribe to collection events: %w", err)
	}
	defer sub.Close()

	// A nil channel never fires, so a non-positive timeout waits forever.
	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timeoutCh = time.After(timeout)
	}
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timeoutCh:
			return "", fmt.Errorf("timeout waiting for collection change after %v", timeout)
		case name, ok := <-sub.Events():
			if !ok {
				return "", fmt.Errorf("subscription closed")
			}
			if collection == "" || name == collection {
				return name, nil
			}
		case err, ok := <-sub.Errors():
			if ok && err != nil {
				return "", err
			}
		}
	}
}
