package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Arrognz/babycheck/internal/core/event"
	"github.com/Arrognz/babycheck/internal/util"
)

var (
	addAt  int64
	addAgo time.Duration
)

var addCmd = &cobra.Command{
	Use:   "add <kind>",
	Short: "Log an event",
	Long: `Appends one event to the log. Kinds: sleep, wake, pee, poop, crying,
leftBoob, rightBoob, leftBoobStop, rightBoobStop.

The event is stamped now unless --at or --ago says otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().Int64Var(&addAt, "at", 0,
		"Timestamp in epoch milliseconds")
	addCmd.Flags().DurationVar(&addAgo, "ago", 0,
		"How far back the event happened (e.g., 5m, 1h30m)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, _, err := setup(ctx)
	if err != nil {
		return err
	}
	defer tr.Close()

	ts := addAt
	if addAgo > 0 {
		if ts != 0 {
			return fmt.Errorf("--at and --ago are mutually exclusive")
		}
		ts = util.GetTimeProvider().NowMs() - addAgo.Milliseconds()
	}

	e, err := tr.Add(ctx, event.Kind(args[0]), ts)
	if err != nil {
		return err
	}
	fmt.Printf("logged %s at %s\n", e.Kind, util.FormatDayTime(e.Timestamp))
	return nil
}
