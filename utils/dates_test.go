package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	utc := time.Date(2026, time.June, 10, 15, 42, 7, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), BeginningOfDay(utc))
}

func TestBeginningOfDay_NonUTCZoneMatchesUTCDay(t *testing.T) {
	saoPaulo := time.FixedZone("UTC-3", -3*3600)

	// Noon UTC-3 is 15:00 UTC, still June 10 in both zones
	local := time.Date(2026, time.June, 10, 12, 0, 0, 0, saoPaulo)
	day := BeginningOfDay(local)

	assert.Equal(t, time.UTC, day.Location())
	assert.Equal(t, BeginningOfDay(local.UTC()), day)
	assert.Equal(t, time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC), day)
}
