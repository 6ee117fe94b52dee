package cache

import (
	"sync"

	"github.com/Arrognz/babycheck/internal/core/event"
)

// DayCache memoizes the events backing one calendar day, keyed by the
// YYYY-MM-DD day key. A loaded day with no events is cached as an empty
// slice; Get distinguishes that from a day never loaded.
type DayCache struct {
	mu   sync.RWMutex
	days map[string][]event.Event
}

func NewDayCache() *DayCache {
	return &DayCache{days: make(map[string][]event.Event)}
}

// Get returns the cached events for a day and whether the day was ever
// loaded.
func (c *DayCache) Get(dayKey string) ([]event.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	events, ok := c.days[dayKey]
	return events, ok
}

// Put stores a loaded day. A nil slice still marks the day as loaded.
func (c *DayCache) Put(dayKey string, events []event.Event) {
	if events == nil {
		events = []event.Event{}
	}
	c.mu.Lock()
	c.days[dayKey] = events
	c.mu.Unlock()
}

// Invalidate forgets one day.
func (c *DayCache) Invalidate(dayKey string) {
	c.mu.Lock()
	delete(c.days, dayKey)
	c.mu.Unlock()
}

// Clear forgets everything.
func (c *DayCache) Clear() {
	c.mu.Lock()
	c.days = make(map[string][]event.Event)
	c.mu.Unlock()
}

// Len reports how many days are loaded.
func (c *DayCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.days)
}
