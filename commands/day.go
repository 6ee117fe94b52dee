package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/Arrognz/babycheck/internal/presentation/display"
	"github.com/Arrognz/babycheck/internal/util"
	"golang.org/x/term"
)

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Render the timeline of one day",
	Long: `Draws the day as vertical lanes, midnight to midnight: sleep and
feeding intervals as bars, diaper and cry events as dots. Defaults to
today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDay,
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

func runDay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, _, err := setup(ctx)
	if err != nil {
		return err
	}
	defer tr.Close()

	dayKey := util.GetTimeProvider().Now().Format("2006-01-02")
	if len(args) == 1 {
		dayKey = args[0]
	}

	items, err := tr.Day(ctx, dayKey)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(items)
	}

	color := term.IsTerminal(int(os.Stdout.Fd()))
	display.NewDayRenderer(os.Stdout, color).Render(dayKey, items)
	return nil
}
