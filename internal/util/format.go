package util

import (
	"fmt"
	"time"
)

// FormatDurationMs renders an epoch-millisecond duration as "1h05m" or "45m".
func FormatDurationMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalMinutes := ms / 60000
	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatClock renders an epoch-millisecond timestamp as HH:MM in the
// configured timezone.
func FormatClock(ms int64) string {
	tp := GetTimeProvider()
	return tp.Format(time.UnixMilli(ms), "15:04")
}

// FormatDayTime renders an epoch-millisecond timestamp as a full local
// date-time, for log and report output.
func FormatDayTime(ms int64) string {
	tp := GetTimeProvider()
	return tp.Format(time.UnixMilli(ms), "2006-01-02 15:04")
}
