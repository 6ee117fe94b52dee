package stats

import (
	"fmt"
	"time"
)

// Period is a named statistics window anchored at the current time.
type Period string

const (
	PeriodHour     Period = "hour"
	PeriodDay      Period = "day"
	PeriodDays2    Period = "days2"
	PeriodWeek     Period = "week"
	PeriodThisWeek Period = "thisweek"
)

// Periods lists the selectable windows in menu order.
var Periods = []Period{PeriodHour, PeriodDay, PeriodDays2, PeriodWeek, PeriodThisWeek}

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	switch p {
	case PeriodHour, PeriodDay, PeriodDays2, PeriodWeek, PeriodThisWeek:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q (valid: hour, day, days2, week, thisweek)", s)
}

// Window returns the half-open [start, end) window in epoch milliseconds
// for the period anchored at now. Relative periods look back from now;
// thisweek starts at the most recent Sunday midnight in now's location.
func (p Period) Window(now time.Time) (int64, int64) {
	end := now.UnixMilli()
	switch p {
	case PeriodHour:
		return now.Add(-time.Hour).UnixMilli(), end
	case PeriodDays2:
		return now.Add(-48 * time.Hour).UnixMilli(), end
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour).UnixMilli(), end
	case PeriodThisWeek:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		sunday := midnight.AddDate(0, 0, -int(now.Weekday()))
		return sunday.UnixMilli(), end
	default: // PeriodDay
		return now.Add(-24 * time.Hour).UnixMilli(), end
	}
}
