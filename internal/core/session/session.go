package session

import (
	"sort"

	"github.com/Arrognz/babycheck/internal/core/event"
)

// Kind identifies the interval type a session belongs to.
type Kind string

const (
	KindSleep     Kind = "sleep"
	KindFeedLeft  Kind = "leftBoob"
	KindFeedRight Kind = "rightBoob"
)

// SleepClosers lists the event kinds that terminate an open sleep
// interval. Diaper, cry and feed events deliberately do not: a sleeping
// baby can be changed or fed without the sleep being considered over.
var SleepClosers = map[event.Kind]bool{
	event.KindWake: true,
}

// Session is a reconstructed interval. End is zero while the session is
// ongoing; DurationMs for an ongoing session is measured against the
// reference clock passed to Reconstruct.
type Session struct {
	Kind       Kind  `json:"kind"`
	Start      int64 `json:"start"`
	End        int64 `json:"end,omitempty"`
	DurationMs int64 `json:"duration_ms"`
	Ongoing    bool  `json:"ongoing,omitempty"`
}

// Point is a momentary event surviving reconstruction unchanged.
type Point struct {
	Kind      event.Kind `json:"kind"`
	Timestamp int64      `json:"timestamp"`
}

// Result carries everything derived from one pass over the log.
type Result struct {
	Sessions []Session `json:"sessions"`
	Points   []Point   `json:"points"`
}

// cursor tracks an open interval of one kind.
type cursor struct {
	open    bool
	startMs int64
}

func (c *cursor) start(res *Result, kind Kind, ts int64) {
	if c.open {
		// A repeated start implicitly closes the previous interval at
		// the moment the new one begins. Zero duration is valid.
		res.close(kind, c.startMs, ts)
	}
	c.open = true
	c.startMs = ts
}

func (c *cursor) stop(res *Result, kind Kind, ts int64) {
	if !c.open {
		// Orphan stop, nothing was open. Dropped.
		return
	}
	res.close(kind, c.startMs, ts)
	c.open = false
}

func (r *Result) close(kind Kind, start, end int64) {
	r.Sessions = append(r.Sessions, Session{
		Kind:       kind,
		Start:      start,
		End:        end,
		DurationMs: end - start,
	})
}

// Reconstruct folds a normalized, timestamp-sorted event slice into
// sessions and points. Intervals left open when the input ends become
// ongoing sessions whose duration runs up to nowMs. Reconstruction is a
// pure function of (events, nowMs); replaying the same input yields the
// same result.
func Reconstruct(sorted []event.Event, nowMs int64) Result {
	var res Result
	var sleep, left, right cursor

	for _, e := range sorted {
		switch e.Kind {
		case event.KindSleep:
			sleep.start(&res, KindSleep, e.Timestamp)
		case event.KindFeedLeft:
			left.start(&res, KindFeedLeft, e.Timestamp)
		case event.KindFeedRight:
			right.start(&res, KindFeedRight, e.Timestamp)
		case event.KindFeedLeftStop:
			left.stop(&res, KindFeedLeft, e.Timestamp)
		case event.KindFeedRightStop:
			right.stop(&res, KindFeedRight, e.Timestamp)
		default:
			if SleepClosers[e.Kind] {
				sleep.stop(&res, KindSleep, e.Timestamp)
				continue
			}
			if e.Kind.IsPoint() {
				res.Points = append(res.Points, Point{Kind: e.Kind, Timestamp: e.Timestamp})
			}
		}
	}

	for _, open := range []struct {
		c    *cursor
		kind Kind
	}{
		{&sleep, KindSleep},
		{&left, KindFeedLeft},
		{&right, KindFeedRight},
	} {
		if !open.c.open {
			continue
		}
		dur := nowMs - open.c.startMs
		if dur < 0 {
			dur = 0
		}
		res.Sessions = append(res.Sessions, Session{
			Kind:       open.kind,
			Start:      open.c.startMs,
			DurationMs: dur,
			Ongoing:    true,
		})
	}

	sort.SliceStable(res.Sessions, func(i, j int) bool {
		return res.Sessions[i].Start < res.Sessions[j].Start
	})
	return res
}

// EffectiveEnd returns the closing timestamp to account a session with.
// Ongoing sessions are treated as running up to nowMs.
func (s Session) EffectiveEnd(nowMs int64) int64 {
	if s.Ongoing {
		if nowMs < s.Start {
			return s.Start
		}
		return nowMs
	}
	return s.End
}
