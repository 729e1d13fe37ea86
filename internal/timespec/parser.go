// Package timespec parses the time arguments accepted on the command line.
package timespec

import (
	"fmt"
	"time"
)

// Parse parses a time specification into a concrete time.
// Supports two formats:
//   - RFC3339 timestamps: "2026-09-01T09:00:00Z"
//   - Go duration format: "48h", "90m", "1h30m"
//
// Duration specifications are relative to now and point forward, so "48h"
// means "48 hours from now". ETAs and calendar events live in the future.
func Parse(spec string, now time.Time) (time.Time, error) {
	if spec == "" {
		return time.Time{}, fmt.Errorf("empty time specification")
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t, nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		return now.Add(d), nil
	}

	return time.Time{}, fmt.Errorf("invalid time specification: %s (use RFC3339 like '2026-09-01T09:00:00Z' or a duration like '48h')", spec)
}
