package layout

import (
	"fmt"
	"sort"
	"time"

	"github.com/Arrognz/babycheck/internal/core/event"
	"github.com/Arrognz/babycheck/internal/core/session"
)

// Column identifies a vertical lane of the day timeline.
type Column string

const (
	ColumnSleep     Column = "sleep"
	ColumnPee       Column = "pee"
	ColumnPoop      Column = "poop"
	ColumnCry       Column = "crying"
	ColumnFeedLeft  Column = "leftBoob"
	ColumnFeedRight Column = "rightBoob"
)

// Columns lists the lanes in display order.
var Columns = []Column{ColumnSleep, ColumnPee, ColumnPoop, ColumnCry, ColumnFeedLeft, ColumnFeedRight}

// Item types.
const (
	TypeSession = "session"
	TypePoint   = "point"
)

// Item is one positioned element of a day timeline. Percent values are
// relative to a 1440-minute day. Sessions carry StartPct and HeightPct,
// points carry PositionPct.
type Item struct {
	Column      Column  `json:"column"`
	Type        string  `json:"type"`
	StartPct    float64 `json:"start_pct,omitempty"`
	HeightPct   float64 `json:"height_pct,omitempty"`
	PositionPct float64 `json:"position_pct,omitempty"`
	StartMs     int64   `json:"start_ms,omitempty"`
	EndMs       int64   `json:"end_ms,omitempty"`
	Timestamp   int64   `json:"timestamp,omitempty"`
	Ongoing     bool    `json:"ongoing,omitempty"`
}

const dayMinutes = 1440.0

var sessionColumns = map[session.Kind]Column{
	session.KindSleep:     ColumnSleep,
	session.KindFeedLeft:  ColumnFeedLeft,
	session.KindFeedRight: ColumnFeedRight,
}

var pointColumns = map[event.Kind]Column{
	event.KindPee:  ColumnPee,
	event.KindPoop: ColumnPoop,
	event.KindCry:  ColumnCry,
}

// ParseDayKey resolves a YYYY-MM-DD key to local midnight.
func ParseDayKey(dayKey string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", dayKey, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, want YYYY-MM-DD: %w", dayKey, err)
	}
	return day, nil
}

// BuildDay positions reconstructed sessions and points on the 24-hour
// axis of one calendar day. Sessions crossing midnight are clipped to the
// day. An ongoing session renders closed on the day it started when it
// runs past that day's midnight, and renders ongoing on the current day
// up to now.
func BuildDay(res session.Result, dayKey string, nowMs int64, loc *time.Location) ([]Item, error) {
	day, err := ParseDayKey(dayKey, loc)
	if err != nil {
		return nil, err
	}
	dayStart := day.UnixMilli()
	dayEnd := day.AddDate(0, 0, 1).UnixMilli()

	now := time.UnixMilli(nowMs).In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	isToday := today.Equal(day)

	items := make([]Item, 0, len(res.Sessions)+len(res.Points))

	for _, s := range res.Sessions {
		col, ok := sessionColumns[s.Kind]
		if !ok {
			continue
		}
		end := s.EffectiveEnd(nowMs)
		if s.Ongoing && !isToday && s.Start < dayStart {
			// Ongoing session from an earlier day: only the current day
			// shows the running tail, past days in between show nothing.
			continue
		}
		lo, hi := s.Start, end
		if lo < dayStart {
			lo = dayStart
		}
		if hi > dayEnd {
			hi = dayEnd
		}
		if hi < lo || lo >= dayEnd || end < dayStart {
			continue
		}
		if hi == lo && !(s.Start >= dayStart && s.Start < dayEnd) {
			continue
		}
		items = append(items, Item{
			Column:    col,
			Type:      TypeSession,
			StartPct:  pct(lo, dayStart),
			HeightPct: float64(hi-lo) / 60000.0 / dayMinutes * 100,
			StartMs:   lo,
			EndMs:     hi,
			// The running marker only makes sense on the day holding the
			// live edge; a segment cut off at midnight is drawn closed.
			Ongoing: s.Ongoing && isToday && hi == end,
		})
	}

	for _, p := range res.Points {
		col, ok := pointColumns[p.Kind]
		if !ok {
			continue
		}
		if p.Timestamp < dayStart || p.Timestamp >= dayEnd {
			continue
		}
		items = append(items, Item{
			Column:      col,
			Type:        TypePoint,
			PositionPct: pct(p.Timestamp, dayStart),
			Timestamp:   p.Timestamp,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at() < items[j].at()
	})
	return items, nil
}

func (it Item) at() float64 {
	if it.Type == TypePoint {
		return it.PositionPct
	}
	return it.StartPct
}

func pct(ms, dayStart int64) float64 {
	return float64(ms-dayStart) / 60000.0 / dayMinutes * 100
}
