package formatter

import (
	"fmt"
	"strings"

	"github.com/Arrognz/babycheck/internal/util"
)

type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{
			"Period", "Sleep", "Naps", "Avg Nap",
			"Feed L", "Feed R", "Feeds", "Pee", "Poop", "Cry",
		},
	}
}

func (f *TableFormatter) Format(reports []Report) error {
	widths := f.calculateColumnWidths(reports)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")

	for _, r := range reports {
		f.printRow(f.rowValues(r), widths)
	}

	f.printBorder(widths, "bottom")
	return nil
}

func (f *TableFormatter) rowValues(r Report) []string {
	return []string{
		r.Period,
		util.FormatDurationMs(r.SleepTime),
		fmt.Sprintf("%d", r.SleepCount),
		util.FormatDurationMs(r.AverageSleepTime),
		fmt.Sprintf("%s ×%d", util.FormatDurationMs(r.LeftBoobDuration), r.LeftBoobCount),
		fmt.Sprintf("%s ×%d", util.FormatDurationMs(r.RightBoobDuration), r.RightBoobCount),
		fmt.Sprintf("%d", r.FeedCount()),
		fmt.Sprintf("%d", r.PeeCount),
		fmt.Sprintf("%d", r.PoopCount),
		fmt.Sprintf("%d", r.CryCount),
	}
}

func (f *TableFormatter) calculateColumnWidths(reports []Report) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, r := range reports {
		for i, value := range f.rowValues(r) {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		if i == 0 {
			// Period column is left-aligned, numbers right-aligned.
			fmt.Printf(" %s%s │", value, strings.Repeat(" ", widths[i]-util.GetDisplayWidth(value)))
		} else {
			fmt.Printf(" %s%s │", strings.Repeat(" ", widths[i]-util.GetDisplayWidth(value)), value)
		}
	}
	fmt.Println()
}
