package formatter

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arrognz/babycheck/internal/core/stats"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, fnErr)
	return string(out)
}

func sampleReports() []Report {
	return []Report{
		{
			Period: "day",
			Stats: stats.Stats{
				PeriodStart:       1_700_000_000_000,
				PeriodEnd:         1_700_086_400_000,
				SleepTime:         2 * 3_600_000,
				SleepCount:        3,
				AverageSleepTime:  40 * 60_000,
				LeftBoobDuration:  25 * 60_000,
				LeftBoobCount:     4,
				RightBoobDuration: 15 * 60_000,
				RightBoobCount:    2,
				PeeCount:          5,
				PoopCount:         1,
				CryCount:          2,
			},
		},
	}
}

func TestNew(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, New("json"))
	assert.IsType(t, &CSVFormatter{}, New("csv"))
	assert.IsType(t, &SummaryFormatter{}, New("summary"))
	assert.IsType(t, &TableFormatter{}, New("table"))
	assert.IsType(t, &TableFormatter{}, New(""))
}

func TestTableFormatter(t *testing.T) {
	out := captureStdout(t, func() error {
		return NewTableFormatter().Format(sampleReports())
	})

	for _, want := range []string{"Period", "day", "2h00m", "40m", "×4", "×2", "5", "1"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "┘")
}

func TestTableFormatterEmpty(t *testing.T) {
	out := captureStdout(t, func() error {
		return NewTableFormatter().Format(nil)
	})
	assert.Contains(t, out, "Period")
	assert.Contains(t, out, "Sleep")
}

func TestCSVFormatter(t *testing.T) {
	out := captureStdout(t, func() error {
		return NewCSVFormatter().Format(sampleReports())
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Sleep (ms)")
	assert.Contains(t, lines[1], "day")
	assert.Contains(t, lines[1], "7200000")
}

func TestJSONFormatter(t *testing.T) {
	out := captureStdout(t, func() error {
		return NewJSONFormatter().Format(sampleReports())
	})

	assert.Contains(t, out, `"period": "day"`)
	assert.Contains(t, out, `"sleep_time": 7200000`)
	assert.Contains(t, out, `"left_boob_count": 4`)
	assert.Contains(t, out, `"pee_count": 5`)
}

func TestSummaryFormatter(t *testing.T) {
	out := captureStdout(t, func() error {
		return NewSummaryFormatter().Format(sampleReports())
	})

	for _, want := range []string{"Baby Activity Summary", "Sleep:", "Feeding:", "Diapers:", "2h00m", "Crying:"} {
		assert.Contains(t, out, want)
	}
}

func TestSummaryFormatterEmpty(t *testing.T) {
	out := captureStdout(t, func() error {
		return NewSummaryFormatter().Format(nil)
	})
	assert.Contains(t, out, "No data to summarize")
}
