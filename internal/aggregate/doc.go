// Package aggregate computes read-only projections over loaded board
// collections: ETA buckets, dashboard counters, technician usage summaries,
// the recent activity feed and the unified schedule. Everything here is a
// pure function of its inputs plus an injected clock; nothing is cached or
// persisted, each caller recomputes from a fresh snapshot.
package aggregate
