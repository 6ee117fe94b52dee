package formatter

import (
	"encoding/csv"
	"fmt"
	"os"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(reports []Report) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	headers := []string{
		"Period", "Period Start", "Period End",
		"Sleep (ms)", "Sleep Count", "Avg Sleep (ms)",
		"Feed Left (ms)", "Feed Left Count",
		"Feed Right (ms)", "Feed Right Count",
		"Pee", "Poop", "Cry",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, r := range reports {
		record := []string{
			r.Period,
			fmt.Sprintf("%d", r.PeriodStart),
			fmt.Sprintf("%d", r.PeriodEnd),
			fmt.Sprintf("%d", r.SleepTime),
			fmt.Sprintf("%d", r.SleepCount),
			fmt.Sprintf("%d", r.AverageSleepTime),
			fmt.Sprintf("%d", r.LeftBoobDuration),
			fmt.Sprintf("%d", r.LeftBoobCount),
			fmt.Sprintf("%d", r.RightBoobDuration),
			fmt.Sprintf("%d", r.RightBoobCount),
			fmt.Sprintf("%d", r.PeeCount),
			fmt.Sprintf("%d", r.PoopCount),
			fmt.Sprintf("%d", r.CryCount),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
