package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeProviderDefaultsToLocal(t *testing.T) {
	tp := GetTimeProvider()
	require.NotNil(t, tp)
	assert.NotNil(t, tp.Location())
}

func TestSetTimezone(t *testing.T) {
	tp := GetTimeProvider()
	original := tp.Location()
	defer tp.SetTimezone(original.String())

	require.NoError(t, tp.SetTimezone("UTC"))
	assert.Equal(t, time.UTC, tp.Location())

	assert.Error(t, tp.SetTimezone("Mars/Olympus_Mons"))
	// A failed change keeps the previous zone.
	assert.Equal(t, time.UTC, tp.Location())
}

func TestNowMs(t *testing.T) {
	tp := GetTimeProvider()
	before := time.Now().UnixMilli()
	got := tp.NowMs()
	after := time.Now().UnixMilli()
	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}

func TestDayKey(t *testing.T) {
	tp := GetTimeProvider()
	original := tp.Location()
	defer tp.SetTimezone(original.String())
	require.NoError(t, tp.SetTimezone("UTC"))

	ts := time.Date(2025, 6, 11, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-11", tp.DayKey(ts))
}
