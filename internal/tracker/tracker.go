package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Arrognz/babycheck/internal/core/event"
	"github.com/Arrognz/babycheck/internal/core/layout"
	"github.com/Arrognz/babycheck/internal/core/session"
	"github.com/Arrognz/babycheck/internal/core/state"
	"github.com/Arrognz/babycheck/internal/core/stats"
	"github.com/Arrognz/babycheck/internal/data/cache"
	"github.com/Arrognz/babycheck/internal/data/store"
	"github.com/Arrognz/babycheck/internal/util"
)

// lookback is how far before a window events are still fetched so that
// sessions opened earlier and running into the window reconstruct
// correctly. Two days covers any realistic sleep or feed.
const lookback = 48 * time.Hour

// Tracker derives state, statistics and day timelines from a Store. All
// derivation is stateless; only raw day fetches are cached.
type Tracker struct {
	store    store.Store
	cache    *cache.DayCache
	prefetch *cache.Prefetcher
	loc      *time.Location
}

// Option tweaks a Tracker.
type Option func(*Tracker)

// WithPrefetchDebounce overrides the prefetch debounce interval.
func WithPrefetchDebounce(d time.Duration) Option {
	return func(t *Tracker) {
		t.prefetch = cache.NewPrefetcher(t.cache, t.fetchDay, d, t.loc)
	}
}

// New builds a tracker over a store using the global timezone.
func New(s store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: s,
		cache: cache.NewDayCache(),
		loc:   util.GetTimeProvider().Location(),
	}
	t.prefetch = cache.NewPrefetcher(t.cache, t.fetchDay, cache.DefaultDebounce, t.loc)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Close releases the underlying store.
func (t *Tracker) Close() error {
	t.prefetch.Stop()
	return t.store.Close()
}

// EventsBetween returns the normalized events in [startMs, endMs).
func (t *Tracker) EventsBetween(ctx context.Context, startMs, endMs int64) ([]event.Event, error) {
	raw, err := t.store.Search(ctx, startMs, endMs)
	if err != nil {
		return nil, err
	}
	return event.Normalize(raw), nil
}

// StatsForPeriod aggregates the named period ending now.
func (t *Tracker) StatsForPeriod(ctx context.Context, period stats.Period) (stats.Stats, error) {
	now := util.GetTimeProvider().Now()
	ws, we := period.Window(now)
	return t.StatsForWindow(ctx, ws, we)
}

// StatsForWindow aggregates an explicit [startMs, endMs) window.
func (t *Tracker) StatsForWindow(ctx context.Context, startMs, endMs int64) (stats.Stats, error) {
	events, err := t.EventsBetween(ctx, startMs-lookback.Milliseconds(), endMs)
	if err != nil {
		return stats.Stats{}, err
	}
	nowMs := util.GetTimeProvider().NowMs()
	res := session.Reconstruct(events, nowMs)
	return stats.Aggregate(res, startMs, endMs, nowMs), nil
}

// CurrentState projects the instantaneous state from the recent log.
func (t *Tracker) CurrentState(ctx context.Context) (state.Snapshot, error) {
	nowMs := util.GetTimeProvider().NowMs()
	events, err := t.EventsBetween(ctx, nowMs-lookback.Milliseconds(), nowMs+1)
	if err != nil {
		return state.Snapshot{}, err
	}
	return state.Current(events), nil
}

// Day builds the 24-hour timeline for a YYYY-MM-DD key and warms the
// cache around it for adjacent-day navigation.
func (t *Tracker) Day(ctx context.Context, dayKey string) ([]layout.Item, error) {
	events, ok := t.cache.Get(dayKey)
	if !ok {
		var err error
		events, err = t.fetchDay(ctx, dayKey)
		if err != nil {
			return nil, err
		}
		t.cache.Put(dayKey, events)
	}
	// The warm-up outlives the triggering request, so it must not die
	// with its context.
	t.prefetch.Request(context.WithoutCancel(ctx), dayKey)

	nowMs := util.GetTimeProvider().NowMs()
	res := session.Reconstruct(events, nowMs)
	return layout.BuildDay(res, dayKey, nowMs, t.loc)
}

// Add appends a new event of the given kind. A zero timestamp means now.
// The ID is generated here; callers never supply one.
func (t *Tracker) Add(ctx context.Context, kind event.Kind, timestampMs int64) (event.Event, error) {
	if timestampMs == 0 {
		timestampMs = util.GetTimeProvider().NowMs()
	}
	e := event.Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Timestamp: timestampMs,
	}
	if err := event.Check(e); err != nil {
		return event.Event{}, err
	}
	if err := t.store.Add(ctx, e); err != nil {
		return event.Event{}, err
	}
	t.invalidateAround(timestampMs)
	util.LogDebugf("added %s event at %d", kind, timestampMs)
	return e, nil
}

// Delete removes every event at an exact timestamp.
func (t *Tracker) Delete(ctx context.Context, timestampMs int64) (int, error) {
	n, err := t.store.Delete(ctx, timestampMs)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		t.invalidateAround(timestampMs)
	}
	return n, nil
}

// Retype changes the kind of the events at a timestamp, the correction
// path for a mistapped entry.
func (t *Tracker) Retype(ctx context.Context, timestampMs int64, kind event.Kind) (int, error) {
	n, err := t.store.Retype(ctx, timestampMs, kind)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		t.invalidateAround(timestampMs)
	}
	return n, nil
}

// InvalidateCache drops all cached days, used when the backing log
// changed behind our back.
func (t *Tracker) InvalidateCache() {
	t.cache.Clear()
}

// fetchDay loads the raw events backing one day, including the lookback
// margin before midnight so cross-midnight sessions survive.
func (t *Tracker) fetchDay(ctx context.Context, dayKey string) ([]event.Event, error) {
	day, err := layout.ParseDayKey(dayKey, t.loc)
	if err != nil {
		return nil, err
	}
	start := day.UnixMilli() - lookback.Milliseconds()
	end := day.AddDate(0, 0, 1).UnixMilli()
	return t.EventsBetween(ctx, start, end)
}

// invalidateAround drops the day holding a timestamp and its neighbors;
// the lookback margin makes adjacent days depend on it too.
func (t *Tracker) invalidateAround(timestampMs int64) {
	day := time.UnixMilli(timestampMs).In(t.loc)
	for _, d := range []time.Time{day.AddDate(0, 0, -1), day, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2)} {
		t.cache.Invalidate(d.Format("2006-01-02"))
	}
}
