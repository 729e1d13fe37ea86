package boardstore

import "fmt"

// Redis key pattern helpers
//
// All Redis keys and Pub/Sub channels are namespaced by instance name so
// multiple boards can coexist on a single Redis server.
//
// Key pattern: opsboard:{instance_name}:{kind}:{name}
// Channel pattern: opsboard:{instance_name}:collection_events

// Collection names. Each names one whole-array JSON value in the store.
const (
	CollectionWorkOrders  = "workorders"
	CollectionTechnicians = "techs"
	CollectionCosts       = "costs"
	CollectionProposals   = "proposals"
	CollectionFiles       = "files"
	CollectionCalendar    = "calendar"
)

// Collections lists every collection name in a stable order.
// Used by refresh loops that re-read the whole board.
func Collections() []string {
	return []string{
		CollectionWorkOrders,
		CollectionTechnicians,
		CollectionCosts,
		CollectionProposals,
		CollectionFiles,
		CollectionCalendar,
	}
}

// KnownCollection reports whether name is one of the board's collections.
func KnownCollection(name string) bool {
	switch name {
	case CollectionWorkOrders, CollectionTechnicians, CollectionCosts,
		CollectionProposals, CollectionFiles, CollectionCalendar:
		return true
	default:
		return false
	}
}

// CollectionKey returns the Redis key for a collection.
// Pattern: opsboard:{instance_name}:collection:{collection_name}
func CollectionKey(instanceName, collection string) string {
	return fmt.Sprintf("opsboard:%s:collection:%s", instanceName, collection)
}

// BlobKey returns the Redis key for an uploaded file's bytes.
// Blob ids are the owning FileRecord's id and are never reused.
// Pattern: opsboard:{instance_name}:blob:{file_id}
func BlobKey(instanceName, fileID string) string {
	return fmt.Sprintf("opsboard:%s:blob:%s", instanceName, fileID)
}

// CollectionEventsChannel returns the Pub/Sub channel for collection change
// events. The message payload is the collection name that was written.
// Pattern: opsboard:{instance_name}:collection_events
func CollectionEventsChannel(instanceName string) string {
	return fmt.Sprintf("opsboard:%s:collection_events", instanceName)
}
