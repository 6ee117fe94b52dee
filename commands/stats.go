package commands

import (
	"github.com/spf13/cobra"

	"github.com/Arrognz/babycheck/internal/core/stats"
	"github.com/Arrognz/babycheck/internal/presentation/formatter"
)

var statsPeriod string

var statsCmd = &cobra.Command{
	Use:   "stats [period]",
	Short: "Show aggregated statistics for a period",
	Long: `Aggregates sleep, feeding and diaper activity over a window ending
now. Periods: hour, day, days2, week, thisweek (since Sunday midnight),
or "all" for every period at once.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", "day",
		"Statistics period (hour, day, days2, week, thisweek, all)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, _, err := setup(ctx)
	if err != nil {
		return err
	}
	defer tr.Close()

	name := statsPeriod
	if len(args) == 1 {
		name = args[0]
	}

	var periods []stats.Period
	if name == "all" {
		periods = stats.Periods
	} else {
		p, err := stats.ParsePeriod(name)
		if err != nil {
			return err
		}
		periods = []stats.Period{p}
	}

	reports := make([]formatter.Report, 0, len(periods))
	for _, p := range periods {
		st, err := tr.StatsForPeriod(ctx, p)
		if err != nil {
			return err
		}
		reports = append(reports, formatter.Report{Period: string(p), Stats: st})
	}

	return formatter.New(outputFormat).Format(reports)
}
