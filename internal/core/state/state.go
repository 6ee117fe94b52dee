package state

import (
	"github.com/Arrognz/babycheck/internal/core/event"
)

// State is the current condition derived from the log tail.
type State string

const (
	StateUnknown      State = "unknown"
	StateAwake        State = "awake"
	StateAsleep       State = "asleep"
	StateFeedingLeft  State = "feedingLeft"
	StateFeedingRight State = "feedingRight"
)

// Snapshot is the derived current state and the timestamp of the event
// that established it. ChangedAt is zero when the state is unknown.
type Snapshot struct {
	State     State `json:"state"`
	ChangedAt int64 `json:"changed_at,omitempty"`
}

// Feeding reports whether the snapshot is one of the feeding states.
func (s Snapshot) Feeding() bool {
	return s.State == StateFeedingLeft || s.State == StateFeedingRight
}

// Current projects the instantaneous state from a normalized,
// timestamp-sorted log. An active feed displays over sleep or wake: it is
// the more specific condition. Momentary events never change the state.
func Current(sorted []event.Event) Snapshot {
	var (
		lastSleepWake   event.Event
		hasSleepWake    bool
		lastFeedSide    event.Side
		lastFeedIsStart bool
		lastFeedTs      int64
		hasFeed         bool
	)

	for _, e := range sorted {
		switch {
		case e.Kind == event.KindSleep || e.Kind == event.KindWake:
			lastSleepWake = e
			hasSleepWake = true
		default:
			if side, ok := e.Kind.FeedStartSide(); ok {
				lastFeedSide, lastFeedIsStart, lastFeedTs, hasFeed = side, true, e.Timestamp, true
			} else if side, ok := e.Kind.FeedStopSide(); ok {
				lastFeedSide, lastFeedIsStart, lastFeedTs, hasFeed = side, false, e.Timestamp, true
			}
		}
	}

	if hasFeed && lastFeedIsStart && (!hasSleepWake || lastFeedTs >= lastSleepWake.Timestamp) {
		st := StateFeedingLeft
		if lastFeedSide == event.SideRight {
			st = StateFeedingRight
		}
		return Snapshot{State: st, ChangedAt: lastFeedTs}
	}
	if hasSleepWake {
		st := StateAwake
		if lastSleepWake.Kind == event.KindSleep {
			st = StateAsleep
		}
		return Snapshot{State: st, ChangedAt: lastSleepWake.Timestamp}
	}
	return Snapshot{State: StateUnknown}
}
