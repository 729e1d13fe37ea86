package timespec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRFC3339(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	at, err := Parse("2026-09-01T09:00:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), at)
}

func TestParseDurationIsForward(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	at, err := Parse("48h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(48*time.Hour), at)
}

func TestParseRejectsGarbage(t *testing.T) {
	now := time.Now()
	for _, bad := range []string{"", "tomorrow", "2026-99-01T09:00:00Z"} {
		_, err := Parse(bad, now)
		assert.Error(t, err, "spec %q should be rejected", bad)
	}
}
