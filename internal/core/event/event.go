package event

import (
	"fmt"
	"sort"
)

// Kind identifies the type of a logged event. The wire names match the
// values historically stored in the event log.
type Kind string

const (
	KindSleep         Kind = "sleep"
	KindWake          Kind = "wake"
	KindPee           Kind = "pee"
	KindPoop          Kind = "poop"
	KindCry           Kind = "crying"
	KindFeedLeft      Kind = "leftBoob"
	KindFeedRight     Kind = "rightBoob"
	KindFeedLeftStop  Kind = "leftBoobStop"
	KindFeedRightStop Kind = "rightBoobStop"
)

// Side identifies a feeding side.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// AllKinds lists every recognized kind, in display order.
var AllKinds = []Kind{
	KindSleep, KindWake,
	KindPee, KindPoop, KindCry,
	KindFeedLeft, KindFeedLeftStop,
	KindFeedRight, KindFeedRightStop,
}

// Valid reports whether k is a recognized kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSleep, KindWake, KindPee, KindPoop, KindCry,
		KindFeedLeft, KindFeedRight, KindFeedLeftStop, KindFeedRightStop:
		return true
	}
	return false
}

// IsPoint reports whether k is a momentary event that carries no duration.
func (k Kind) IsPoint() bool {
	return k == KindPee || k == KindPoop || k == KindCry
}

// FeedStartSide returns the side of a feed-start kind.
func (k Kind) FeedStartSide() (Side, bool) {
	switch k {
	case KindFeedLeft:
		return SideLeft, true
	case KindFeedRight:
		return SideRight, true
	}
	return "", false
}

// FeedStopSide returns the side of a feed-stop kind.
func (k Kind) FeedStopSide() (Side, bool) {
	switch k {
	case KindFeedLeftStop:
		return SideLeft, true
	case KindFeedRightStop:
		return SideRight, true
	}
	return "", false
}

// FeedStart returns the feed-start kind for a side.
func FeedStart(side Side) Kind {
	if side == SideRight {
		return KindFeedRight
	}
	return KindFeedLeft
}

// FeedStop returns the feed-stop kind for a side.
func FeedStop(side Side) Kind {
	if side == SideRight {
		return KindFeedRightStop
	}
	return KindFeedLeftStop
}

// Event is a single immutable point entry in the log. Timestamp is epoch
// milliseconds.
type Event struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"name"`
	Timestamp int64  `json:"timestamp"`
}

// Check validates a single event against the model. A failing event is
// rejected individually; it never aborts a batch.
func Check(e Event) error {
	if !e.Kind.Valid() {
		return fmt.Errorf("malformed event: unknown kind %q", e.Kind)
	}
	if e.Timestamp <= 0 {
		return fmt.Errorf("malformed event: non-positive timestamp %d", e.Timestamp)
	}
	return nil
}

// Normalize returns the valid events sorted ascending by timestamp. Ties
// keep the input order, so equal-timestamp collections derive
// deterministically. The input slice is never mutated.
func Normalize(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if err := Check(e); err != nil {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}
