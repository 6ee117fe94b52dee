package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arrognz/babycheck/internal/core/event"
)

func TestDayCacheAbsentVsEmpty(t *testing.T) {
	c := NewDayCache()

	_, ok := c.Get("2025-06-11")
	assert.False(t, ok, "never loaded day must read as absent")

	c.Put("2025-06-11", nil)
	events, ok := c.Get("2025-06-11")
	assert.True(t, ok, "a loaded empty day is not absent")
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestDayCachePutGetInvalidate(t *testing.T) {
	c := NewDayCache()
	in := []event.Event{{ID: "a", Kind: event.KindPee, Timestamp: 1000}}

	c.Put("2025-06-11", in)
	got, ok := c.Get("2025-06-11")
	require.True(t, ok)
	assert.Equal(t, in, got)
	assert.Equal(t, 1, c.Len())

	c.Invalidate("2025-06-11")
	_, ok = c.Get("2025-06-11")
	assert.False(t, ok)

	c.Put("a", nil)
	c.Put("b", nil)
	c.Clear()
	assert.Zero(t, c.Len())
}

type recordingFetcher struct {
	mu   sync.Mutex
	days []string
}

func (f *recordingFetcher) fetch(_ context.Context, dayKey string) ([]event.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, dayKey)
	return nil, nil
}

func (f *recordingFetcher) fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.days...)
}

func TestPrefetcherLoadsAdjacentDays(t *testing.T) {
	c := NewDayCache()
	f := &recordingFetcher{}
	p := NewPrefetcher(c, f.fetch, 10*time.Millisecond, time.UTC)
	defer p.Stop()

	// A past day: previous and next both load.
	p.Request(context.Background(), "2025-06-11")

	assert.Eventually(t, func() bool {
		return len(f.fetched()) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"2025-06-11", "2025-06-10", "2025-06-12"}, f.fetched())

	for _, day := range []string{"2025-06-10", "2025-06-11", "2025-06-12"} {
		_, ok := c.Get(day)
		assert.True(t, ok, "day %s should be cached", day)
	}
}

func TestPrefetcherDebounces(t *testing.T) {
	c := NewDayCache()
	f := &recordingFetcher{}
	p := NewPrefetcher(c, f.fetch, 50*time.Millisecond, time.UTC)
	defer p.Stop()

	ctx := context.Background()
	p.Request(ctx, "2025-06-01")
	p.Request(ctx, "2025-06-02")
	p.Request(ctx, "2025-06-03")

	assert.Eventually(t, func() bool {
		return len(f.fetched()) >= 3
	}, time.Second, 5*time.Millisecond)

	// Only the last request fired; earlier days were never fetched
	// directly (2025-06-02 appears only as the neighbor of 06-03).
	days := f.fetched()
	assert.Contains(t, days, "2025-06-03")
	assert.NotContains(t, days, "2025-06-01")
}

func TestPrefetcherSkipsLoadedDays(t *testing.T) {
	c := NewDayCache()
	f := &recordingFetcher{}
	p := NewPrefetcher(c, f.fetch, 10*time.Millisecond, time.UTC)
	defer p.Stop()

	c.Put("2025-06-10", nil)
	c.Put("2025-06-11", nil)
	p.Request(context.Background(), "2025-06-11")

	assert.Eventually(t, func() bool {
		return len(f.fetched()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"2025-06-12"}, f.fetched())
}
