// Package boardstore provides type-safe Go definitions and Redis schema
// patterns for the opsboard shared data layer.
//
// # Overview
//
// The board is the device-local state store shared by every concurrently open
// instance of the dispatch application (CLI invocations, watchers, dashboard
// views). Instances have no shared memory; they coordinate only through the
// store itself and pub/sub change notifications keyed by collection name.
//
// # Collections
//
// Each entity kind (work orders, technicians, cost requests, proposals, file
// records, calendar events) is persisted as a single named collection: one
// JSON array stored under one key, always written whole. There is no
// per-record API, no version field, and no compare-and-swap: two instances
// writing the same collection race, and the last write wins at whole-
// collection granularity. Instances reduce the staleness window by re-reading
// collections on change notifications and on periodic refresh, but the race
// is a documented property of the store, not a bug.
//
// # Degraded loads
//
// Missing or corrupt collection data never fails a load. The collection
// degrades to an empty list and the condition is reported through the
// client's warn logger, keeping the application usable at the cost of that
// collection's contents.
//
// # Multi-Instance Support
//
// All Redis keys and Pub/Sub channels are namespaced by instance name so
// multiple boards can coexist on a single Redis server without interference.
//
// # Redis Schema
//
// Collections: opsboard:{instance_name}:collection:{collection_name}
// Blobs:       opsboard:{instance_name}:blob:{file_id}
// Change events: opsboard:{instance_name}:collection_events
package boardstore
