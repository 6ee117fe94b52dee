package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/Arrognz/babycheck/internal/core/event"
	"github.com/Arrognz/babycheck/internal/core/session"
)

const minute = int64(60_000)

func hhmm(h, m int) int64 {
	return int64(h*60+m) * minute
}

func TestAggregateClipsBoundarySession(t *testing.T) {
	res := session.Result{
		Sessions: []session.Session{
			{Kind: session.KindSleep, Start: hhmm(8, 30), End: hhmm(9, 45), DurationMs: 75 * minute},
		},
	}
	st := Aggregate(res, hhmm(9, 0), hhmm(10, 0), hhmm(10, 0))

	assert.Equal(t, 45*minute, st.SleepTime)
	// Started before the window, so it is not counted here.
	assert.Equal(t, 0, st.SleepCount)
	assert.Equal(t, int64(0), st.AverageSleepTime)
}

func TestAggregateCountsOngoing(t *testing.T) {
	now := hhmm(10, 0)
	res := session.Result{
		Sessions: []session.Session{
			{Kind: session.KindFeedLeft, Start: hhmm(8, 0), End: hhmm(8, 5), DurationMs: 5 * minute},
			{Kind: session.KindFeedLeft, Start: hhmm(8, 5), Ongoing: true, DurationMs: now - hhmm(8, 5)},
		},
	}
	st := Aggregate(res, hhmm(0, 0), now, now)

	assert.Equal(t, 2, st.LeftBoobCount)
	assert.Equal(t, 5*minute+(now-hhmm(8, 5)), st.LeftBoobDuration)
	assert.Equal(t, 2, st.FeedCount())
}

func TestAggregateOngoingClippedAtWindowEnd(t *testing.T) {
	now := hhmm(12, 0)
	res := session.Result{
		Sessions: []session.Session{
			{Kind: session.KindSleep, Start: hhmm(9, 30), Ongoing: true},
		},
	}
	st := Aggregate(res, hhmm(9, 0), hhmm(10, 0), now)

	assert.Equal(t, 30*minute, st.SleepTime)
	assert.Equal(t, 1, st.SleepCount)
	assert.Equal(t, 30*minute, st.AverageSleepTime)
}

func TestAggregatePoints(t *testing.T) {
	res := session.Result{
		Points: []session.Point{
			{Kind: event.KindPee, Timestamp: hhmm(9, 10)},
			{Kind: event.KindPee, Timestamp: hhmm(10, 0)}, // at end, excluded
			{Kind: event.KindPoop, Timestamp: hhmm(9, 0)}, // at start, included
			{Kind: event.KindCry, Timestamp: hhmm(9, 59)},
			{Kind: event.KindCry, Timestamp: hhmm(8, 59)},
		},
	}
	st := Aggregate(res, hhmm(9, 0), hhmm(10, 0), hhmm(10, 0))

	assert.Equal(t, 1, st.PeeCount)
	assert.Equal(t, 1, st.PoopCount)
	assert.Equal(t, 1, st.CryCount)
}

func TestAggregateAverage(t *testing.T) {
	res := session.Result{
		Sessions: []session.Session{
			{Kind: session.KindSleep, Start: hhmm(1, 0), End: hhmm(2, 0)},
			{Kind: session.KindSleep, Start: hhmm(3, 0), End: hhmm(3, 30)},
		},
	}
	st := Aggregate(res, 0, hhmm(4, 0), hhmm(4, 0))

	assert.Equal(t, 2, st.SleepCount)
	assert.Equal(t, 90*minute, st.SleepTime)
	assert.Equal(t, 45*minute, st.AverageSleepTime)
}

func TestAggregateEmptyWindow(t *testing.T) {
	st := Aggregate(session.Result{}, 0, hhmm(1, 0), hhmm(1, 0))
	assert.Zero(t, st.SleepTime)
	assert.Zero(t, st.SleepCount)
	assert.Zero(t, st.AverageSleepTime)
	assert.Zero(t, st.PeeCount)
}

// Splitting a window at any point must preserve total durations:
// durations are clipped, never double counted.
func TestAggregateDurationAdditivity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		res := session.Result{}
		for i := 0; i < n; i++ {
			start := int64(rapid.IntRange(0, 5000).Draw(t, "start")) * minute
			length := int64(rapid.IntRange(0, 600).Draw(t, "length")) * minute
			res.Sessions = append(res.Sessions, session.Session{
				Kind:       session.KindSleep,
				Start:      start,
				End:        start + length,
				DurationMs: length,
			})
		}
		windowEnd := int64(6000) * minute
		cut := int64(rapid.IntRange(0, 6000).Draw(t, "cut")) * minute
		now := windowEnd

		whole := Aggregate(res, 0, windowEnd, now)
		left := Aggregate(res, 0, cut, now)
		right := Aggregate(res, cut, windowEnd, now)

		assert.Equal(t, whole.SleepTime, left.SleepTime+right.SleepTime)
		assert.Equal(t, whole.SleepCount, left.SleepCount+right.SleepCount)
	})
}

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods {
		got, err := ParsePeriod(string(p))
		assert.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePeriod("fortnight")
	assert.Error(t, err)
}

func TestPeriodWindows(t *testing.T) {
	// Wednesday 15:30 local.
	now := time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period Period
		start  time.Time
	}{
		{PeriodHour, now.Add(-time.Hour)},
		{PeriodDay, now.Add(-24 * time.Hour)},
		{PeriodDays2, now.Add(-48 * time.Hour)},
		{PeriodWeek, now.Add(-7 * 24 * time.Hour)},
		{PeriodThisWeek, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := tt.period.Window(now)
			assert.Equal(t, tt.start.UnixMilli(), start)
			assert.Equal(t, now.UnixMilli(), end)
		})
	}
}

func TestThisWeekOnSunday(t *testing.T) {
	// Already Sunday: window starts at that day's midnight.
	now := time.Date(2025, 6, 8, 9, 0, 0, 0, time.UTC)
	start, _ := PeriodThisWeek.Window(now)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC).UnixMilli(), start)
}
