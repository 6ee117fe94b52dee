package stats

import (
	"github.com/Arrognz/babycheck/internal/core/event"
	"github.com/Arrognz/babycheck/internal/core/session"
)

// Stats aggregates one time window. Durations are milliseconds, the
// window is half-open [PeriodStart, PeriodEnd).
type Stats struct {
	PeriodStart int64 `json:"period_start"`
	PeriodEnd   int64 `json:"period_end"`

	SleepTime        int64 `json:"sleep_time"`
	SleepCount       int   `json:"sleep_count"`
	AverageSleepTime int64 `json:"average_sleep_time"`

	LeftBoobDuration  int64 `json:"left_boob_duration"`
	LeftBoobCount     int   `json:"left_boob_count"`
	RightBoobDuration int64 `json:"right_boob_duration"`
	RightBoobCount    int   `json:"right_boob_count"`

	PeeCount  int `json:"pee_count"`
	PoopCount int `json:"poop_count"`
	CryCount  int `json:"cry_count"`
}

// FeedTime is the combined feeding duration of both sides.
func (s Stats) FeedTime() int64 {
	return s.LeftBoobDuration + s.RightBoobDuration
}

// FeedCount is the combined feeding count of both sides.
func (s Stats) FeedCount() int {
	return s.LeftBoobCount + s.RightBoobCount
}

// Aggregate folds reconstructed sessions and points into window
// statistics. Durations are clipped to the window, so a session
// straddling a boundary contributes exactly its inside part and two
// adjacent windows sum to their union. A session is counted when it
// starts inside the window, ongoing ones included.
func Aggregate(res session.Result, windowStart, windowEnd, nowMs int64) Stats {
	st := Stats{PeriodStart: windowStart, PeriodEnd: windowEnd}

	for _, s := range res.Sessions {
		dur := clip(s.Start, s.EffectiveEnd(nowMs), windowStart, windowEnd)
		counted := s.Start >= windowStart && s.Start < windowEnd

		switch s.Kind {
		case session.KindSleep:
			st.SleepTime += dur
			if counted {
				st.SleepCount++
			}
		case session.KindFeedLeft:
			st.LeftBoobDuration += dur
			if counted {
				st.LeftBoobCount++
			}
		case session.KindFeedRight:
			st.RightBoobDuration += dur
			if counted {
				st.RightBoobCount++
			}
		}
	}

	for _, p := range res.Points {
		if p.Timestamp < windowStart || p.Timestamp >= windowEnd {
			continue
		}
		switch p.Kind {
		case event.KindPee:
			st.PeeCount++
		case event.KindPoop:
			st.PoopCount++
		case event.KindCry:
			st.CryCount++
		}
	}

	if st.SleepCount > 0 {
		st.AverageSleepTime = st.SleepTime / int64(st.SleepCount)
	}
	return st
}

// clip returns the length of the overlap between [start, end) and
// [windowStart, windowEnd), never negative.
func clip(start, end, windowStart, windowEnd int64) int64 {
	lo, hi := start, end
	if lo < windowStart {
		lo = windowStart
	}
	if hi > windowEnd {
		hi = windowEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
