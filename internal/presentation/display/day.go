package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/Arrognz/babycheck/internal/core/layout"
	"github.com/Arrognz/babycheck/internal/util"
)

// rows is the vertical resolution of the rendered day, one row per half
// hour.
const rows = 48

const laneWidth = 11

var columnLabels = map[layout.Column]string{
	layout.ColumnSleep:     "Sleep",
	layout.ColumnPee:       "Pee",
	layout.ColumnPoop:      "Poop",
	layout.ColumnCry:       "Cry",
	layout.ColumnFeedLeft:  "Feed L",
	layout.ColumnFeedRight: "Feed R",
}

var columnColors = map[layout.Column]string{
	layout.ColumnSleep:     util.ColorBlue,
	layout.ColumnPee:       util.ColorYellow,
	layout.ColumnPoop:      util.ColorGreen,
	layout.ColumnCry:       util.ColorMagenta,
	layout.ColumnFeedLeft:  util.ColorCyan,
	layout.ColumnFeedRight: util.ColorCyan,
}

// DayRenderer draws a day timeline as a column grid, hours running down
// the left edge.
type DayRenderer struct {
	out   io.Writer
	color bool
}

func NewDayRenderer(out io.Writer, color bool) *DayRenderer {
	return &DayRenderer{out: out, color: color}
}

// Render draws the items produced by layout.BuildDay for one day key.
func (r *DayRenderer) Render(dayKey string, items []layout.Item) {
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, len(layout.Columns))
	}
	colIndex := make(map[layout.Column]int, len(layout.Columns))
	for i, c := range layout.Columns {
		colIndex[c] = i
	}

	ongoing := map[layout.Column]bool{}
	for _, it := range items {
		ci := colIndex[it.Column]
		switch it.Type {
		case layout.TypeSession:
			start := rowOf(it.StartPct)
			end := rowOf(it.StartPct + it.HeightPct)
			if end >= rows {
				end = rows - 1
			}
			for row := start; row <= end; row++ {
				grid[row][ci] = "█"
			}
			if it.Ongoing {
				ongoing[it.Column] = true
			}
		case layout.TypePoint:
			row := rowOf(it.PositionPct)
			if grid[row][ci] == "" {
				grid[row][ci] = "●"
			} else {
				// Stack markers when two points land on the same half hour.
				grid[row][ci] = "◆"
			}
		}
	}

	fmt.Fprintf(r.out, "%s\n", dayKey)
	fmt.Fprint(r.out, "      ")
	for _, c := range layout.Columns {
		label := columnLabels[c]
		if ongoing[c] {
			label += "…"
		}
		fmt.Fprint(r.out, util.PadRight(label, laneWidth))
	}
	fmt.Fprintln(r.out)

	for row := 0; row < rows; row++ {
		if row%2 == 0 {
			fmt.Fprintf(r.out, "%02d:00 ", row/2)
		} else {
			fmt.Fprint(r.out, "      ")
		}
		for _, c := range layout.Columns {
			cell := grid[row][colIndex[c]]
			if cell == "" {
				fmt.Fprint(r.out, util.PadRight("·", laneWidth))
				continue
			}
			if r.color {
				fmt.Fprint(r.out, columnColors[c], util.PadRight(cell, laneWidth), util.ColorReset)
			} else {
				fmt.Fprint(r.out, util.PadRight(cell, laneWidth))
			}
		}
		fmt.Fprintln(r.out)
	}

	r.renderLegend(items)
}

// renderLegend lists the underlying intervals and points with clock
// times, for terminals where the grid alone is too coarse.
func (r *DayRenderer) renderLegend(items []layout.Item) {
	if len(items) == 0 {
		fmt.Fprintln(r.out, "no events recorded")
		return
	}
	fmt.Fprintln(r.out, strings.Repeat("─", 40))
	for _, it := range items {
		label := columnLabels[it.Column]
		if it.Type == layout.TypePoint {
			fmt.Fprintf(r.out, "%s  %s\n", util.FormatClock(it.Timestamp), label)
			continue
		}
		end := util.FormatClock(it.EndMs)
		if it.Ongoing {
			end = "now"
		}
		fmt.Fprintf(r.out, "%s  %s until %s (%s)\n",
			util.FormatClock(it.StartMs), label, end,
			util.FormatDurationMs(it.EndMs-it.StartMs))
	}
}

func rowOf(pct float64) int {
	row := int(pct / 100 * rows)
	if row < 0 {
		return 0
	}
	if row >= rows {
		return rows - 1
	}
	return row
}
