package boardstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Client provides instance-scoped access to the board's collections, blobs
// and change notifications. All keys and channels are automatically
// namespaced with the instance name. The client is safe for concurrent use.
type Client struct {
	rdb          *redis.Client
	instanceName string
	warnf        func(format string, args ...any)
}

// NewClient creates a board client for the specified instance.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - instanceName: board instance identifier (must not be empty)
//
// Returns an error if instanceName is empty.
func NewClient(redisOpts *redis.Options, instanceName string) (*Client, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
		warnf:        func(string, ...any) {},
	}, nil
}

// SetWarnLogger installs the logger used to report degraded loads (missing
// store, corrupt collection data). Degradation is never returned as an error
// from a load: the collection becomes empty and the board stays usable.
func (c *Client) SetWarnLogger(fn func(format string, args ...any)) {
	if fn != nil {
		c.warnf = fn
	}
}

// InstanceName returns the board instance this client is scoped to.
func (c *Client) InstanceName() string {
	return c.instanceName
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies store connectivity. Useful for health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// loadRaw reads a collection's serialized bytes. Missing data and read
// failures both degrade to nil; failures are reported via the warn logger.
func (c *Client) loadRaw(ctx context.Context, collection string) []byte {
	raw, err := c.rdb.Get(ctx, CollectionKey(c.instanceName, collection)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.warnf("failed to read collection %q: %v", collection, err)
		}
		return nil
	}
	return raw
}

// saveRaw serializes and writes a whole collection, then publishes the
// collection name so other live instances re-read it. The write replaces
// the previous value unconditionally: last write wins.
func (c *Client) saveRaw(ctx context.Context, collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %q: %w", collection, err)
	}

	if err := c.rdb.Set(ctx, CollectionKey(c.instanceName, collection), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write collection %q: %w", collection, err)
	}

	channel := CollectionEventsChannel(c.instanceName)
	if err := c.rdb.Publish(ctx, channel, collection).Err(); err != nil {
		return fmt.Errorf("failed to publish change event for %q: %w", collection, err)
	}

	return nil
}

// LoadWorkOrders returns the work order collection. Missing or corrupt data
// degrades to an empty collection, reported through the warn logger.
func (c *Client) LoadWorkOrders(ctx context.Context) []WorkOrder {
	raw := c.loadRaw(ctx, CollectionWorkOrders)
	if raw == nil {
		return []WorkOrder{}
	}

	var rows []WorkOrder
	if err := json.Unmarshal(raw, &rows); err != nil {
		c.warnf("corrupt collection %q, falling back to empty: %v", CollectionWorkOrders, err)
		return []WorkOrder{}
	}
	for i := range rows {
		rows[i].normalize()
	}
	return rows
}

// SaveWorkOrders validates and writes the whole work order collection.
func (c *Client) SaveWorkOrders(ctx context.Context, rows []WorkOrder) error {
	for i := range rows {
		if err := rows[i].Validate(); err != nil {
			return fmt.Errorf("invalid work order: %w", err)
		}
	}
	return c.saveRaw(ctx, CollectionWorkOrders, rows)
}

// LoadTechnicians returns the technician collection. Missing or corrupt data
// degrades to an empty collection, reported through the warn logger.
func (c *Client) LoadTechnicians(ctx context.Context) []Technician {
	raw := c.loadRaw(ctx, CollectionTechnicians)
	if raw == nil {
		return []Technician{}
	}

	var techs []Technician
	if err := json.Unmarshal(raw, &techs); err != nil {
		c.warnf("corrupt collection %q, falling back to empty: %v", CollectionTechnicians, err)
		return []Technician{}
	}
	for i := range techs {
		techs[i].normalize()
	}
	return techs
}

// SaveTechnicians validates and writes the whole technician collection.
func (c *Client) SaveTechnicians(ctx context.Context, techs []Technician) error {
	for i := range techs {
		if err := techs[i].Validate(); err != nil {
			return fmt.Errorf("invalid technician: %w", err)
		}
	}
	return c.saveRaw(ctx, CollectionTechnicians, techs)
}

// LoadCostRequests returns the cost request collection. Missing or corrupt
// data degrades to an empty collection, reported through the warn logger.
func (c *Client) LoadCostRequests(ctx context.Context) []CostRequest {
	raw := c.loadRaw(ctx, CollectionCosts)
	if raw == nil {
		return []CostRequest{}
	}

	var costs []CostRequest
	if err := json.Unmarshal(raw, &costs); err != nil {
		c.warnf("corrupt collection %q, falling back to empty: %v", CollectionCosts, err)
		return []CostRequest{}
	}
	for i := range costs {
		costs[i].normalize()
	}
	return costs
}

// SaveCostRequests validates and writes the whole cost request collection.
func (c *Client) SaveCostRequests(ctx context.Context, costs []CostRequest) error {
	for i := range costs {
		if err := costs[i].Validate(); err != nil {
			return fmt.Errorf("invalid cost request: %w", err)
		}
	}
	return c.saveRaw(ctx, CollectionCosts, costs)
}

// LoadProposals returns the proposal collection. Missing or corrupt data
// degrades to an empty collection, reported through the warn logger.
func (c *Client) LoadProposals(ctx context.Context) []Proposal {
	raw := c.loadRaw(ctx, CollectionProposals)
	if raw == nil {
		return []Proposal{}
	}

	var proposals []Proposal
	if err := json.Unmarshal(raw, &proposals); err != nil {
		c.warnf("corrupt collection %q, falling back to empty: %v", CollectionProposals, err)
		return []Proposal{}
	}
	for i := range proposals {
		proposals[i].normalize()
	}
	return proposals
}

// SaveProposals validates and writes the whole proposal collection.
func (c *Client) SaveProposals(ctx context.Context, proposals []Proposal) error {
	for i := range proposals {
		if err := proposals[i].Validate(); err != nil {
			return fmt.Errorf("invalid proposal: %w", err)
		}
	}
	return c.saveRaw(ctx, CollectionProposals, proposals)
}

// LoadFileRecords returns the file metadata collection. Missing or corrupt
// data degrades to an empty collection, reported through the warn logger.
func (c *Client) LoadFileRecords(ctx context.Context) []FileRecord {
	raw := c.loadRaw(ctx, CollectionFiles)
	if raw == nil {
		return []FileRecord{}
	}

	var files []FileRecord
	if err := json.Unmarshal(raw, &files); err != nil {
		c.warnf("corrupt collection %q, falling back to empty: %v", CollectionFiles, err)
		return []FileRecord{}
	}
	for i := range files {
		files[i].normalize()
	}
	return files
}

// SaveFileRecords validates and writes the whole file metadata collection.
func (c *Client) SaveFileRecords(ctx context.Context, files []FileRecord) error {
	for i := range files {
		if err := files[i].Validate(); err != nil {
			return fmt.Errorf("invalid file record: %w", err)
		}
	}
	return c.saveRaw(ctx, CollectionFiles, files)
}

// LoadCalendarEvents returns the calendar collection. Missing or corrupt
// data degrades to an empty collection, reported through the warn logger.
func (c *Client) LoadCalendarEvents(ctx context.Context) []CalendarEvent {
	raw := c.loadRaw(ctx, CollectionCalendar)
	if raw == nil {
		return []CalendarEvent{}
	}

	var events []CalendarEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		c.warnf("corrupt collection %q, falling back to empty: %v", CollectionCalendar, err)
		return []CalendarEvent{}
	}
	for i := range events {
		events[i].normalize()
	}
	return events
}

// SaveCalendarEvents validates and writes the whole calendar collection.
func (c *Client) SaveCalendarEvents(ctx context.Context, events []CalendarEvent) error {
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return fmt.Errorf("invalid calendar event: %w", err)
		}
	}
	return c.saveRaw(ctx, CollectionCalendar, events)
}

// Subscription represents an active Pub/Sub subscription to collection
// change events. Caller must call Close() when done to clean up resources.
// Events carry the name of the collection another instance wrote.
type Subscription struct {
	events <-chan string
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of changed collection names.
// The channel is closed when the subscription is closed or the context is
// cancelled.
func (s *Subscription) Events() <-chan string {
	return s.events
}

// Errors returns the channel of subscription errors. Errors are non-fatal;
// the subscription continues and the offending message is skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements
// io.Closer. Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// SubscribeCollectionEvents subscribes to collection change events for this
// instance. Every save by any live instance publishes the collection name;
// subscribers should re-read that collection on receipt. Delivery is
// at-most-once; the periodic re-read is the catch-all for dropped
// notifications.
//
// Caller must call subscription.Close() when done. Context cancellation also
// stops the subscription.
func (c *Client) SubscribeCollectionEvents(ctx context.Context) (*Subscription, error) {
	channel := CollectionEventsChannel(c.instanceName)
	pubsub := c.rdb.Subscribe(ctx, channel)

	eventsChan := make(chan string, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				collection := msg.Payload
				if !KnownCollection(collection) {
					select {
					case errorsChan <- fmt.Errorf("unknown collection in change event: %q", collection):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- collection:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error is a "key not found" error
// (redis.Nil). Use this to check whether GetBlob found the blob.
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
