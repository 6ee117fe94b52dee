package formatter

import (
	"fmt"
	"strings"

	"github.com/Arrognz/babycheck/internal/util"
)

// SummaryFormatter prints a readable section report, one block per
// period.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(reports []Report) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Baby Activity Summary")
	fmt.Println(strings.Repeat("=", 60))

	if len(reports) == 0 {
		fmt.Println()
		fmt.Println("No data to summarize")
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		return nil
	}

	for _, r := range reports {
		fmt.Println()
		fmt.Printf("%s (%s to %s)\n", r.Period,
			util.FormatDayTime(r.PeriodStart), util.FormatDayTime(r.PeriodEnd))
		fmt.Println(strings.Repeat("-", 60))

		fmt.Println("Sleep:")
		fmt.Printf("  Total:       %s\n", util.FormatDurationMs(r.SleepTime))
		fmt.Printf("  Naps:        %d\n", r.SleepCount)
		fmt.Printf("  Average:     %s\n", util.FormatDurationMs(r.AverageSleepTime))

		fmt.Println("Feeding:")
		fmt.Printf("  Left:        %s (%d)\n", util.FormatDurationMs(r.LeftBoobDuration), r.LeftBoobCount)
		fmt.Printf("  Right:       %s (%d)\n", util.FormatDurationMs(r.RightBoobDuration), r.RightBoobCount)
		fmt.Printf("  Total:       %s (%d)\n", util.FormatDurationMs(r.FeedTime()), r.FeedCount())

		fmt.Println("Diapers:")
		fmt.Printf("  Pee:         %d\n", r.PeeCount)
		fmt.Printf("  Poop:        %d\n", r.PoopCount)

		if r.CryCount > 0 {
			fmt.Printf("Crying:        %d\n", r.CryCount)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	return nil
}
