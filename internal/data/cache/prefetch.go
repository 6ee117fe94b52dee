package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Arrognz/babycheck/internal/core/event"
	"github.com/Arrognz/babycheck/internal/util"
)

// DefaultDebounce matches the pause a user takes between flipping
// through adjacent days; faster navigation coalesces into one load.
const DefaultDebounce = 500 * time.Millisecond

// Fetcher loads the events backing one day from the store.
type Fetcher func(ctx context.Context, dayKey string) ([]event.Event, error)

// Prefetcher warms the day cache around the day being viewed. Each
// Request resets a debounce timer; when it fires the requested day loads
// first, then the previous day, then the next day unless it lies in the
// future.
type Prefetcher struct {
	cache    *DayCache
	fetch    Fetcher
	debounce time.Duration
	loc      *time.Location

	mu    sync.Mutex
	timer *time.Timer
}

func NewPrefetcher(c *DayCache, fetch Fetcher, debounce time.Duration, loc *time.Location) *Prefetcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if loc == nil {
		loc = time.Local
	}
	return &Prefetcher{cache: c, fetch: fetch, debounce: debounce, loc: loc}
}

// Request schedules a warm-up around dayKey. Rapid successive requests
// replace each other; only the last one fires.
func (p *Prefetcher) Request(ctx context.Context, dayKey string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, func() {
		p.run(ctx, dayKey)
	})
}

// Stop cancels any pending warm-up.
func (p *Prefetcher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Prefetcher) run(ctx context.Context, dayKey string) {
	day, err := time.ParseInLocation("2006-01-02", dayKey, p.loc)
	if err != nil {
		util.LogDebugf("prefetch skipped, bad day key %q: %v", dayKey, err)
		return
	}

	p.load(ctx, dayKey)
	p.load(ctx, day.AddDate(0, 0, -1).Format("2006-01-02"))

	next := day.AddDate(0, 0, 1)
	now := util.GetTimeProvider().Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.loc)
	if !next.After(todayStart) {
		p.load(ctx, next.Format("2006-01-02"))
	}
}

func (p *Prefetcher) load(ctx context.Context, dayKey string) {
	if _, ok := p.cache.Get(dayKey); ok {
		return
	}
	events, err := p.fetch(ctx, dayKey)
	if err != nil {
		util.LogDebugf("prefetch of %s failed: %v", dayKey, err)
		return
	}
	p.cache.Put(dayKey, events)
}
