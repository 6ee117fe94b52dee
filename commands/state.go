package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Arrognz/babycheck/internal/core/state"
	"github.com/Arrognz/babycheck/internal/util"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show what the baby is doing right now",
	Args:  cobra.NoArgs,
	RunE:  runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
}

var stateLabels = map[state.State]string{
	state.StateUnknown:      "unknown, no recent events",
	state.StateAwake:        "awake",
	state.StateAsleep:       "asleep",
	state.StateFeedingLeft:  "feeding (left)",
	state.StateFeedingRight: "feeding (right)",
}

func runState(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, _, err := setup(ctx)
	if err != nil {
		return err
	}
	defer tr.Close()

	snap, err := tr.CurrentState(ctx)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snap)
	}

	if snap.State == state.StateUnknown {
		fmt.Println(stateLabels[snap.State])
		return nil
	}
	elapsed := util.GetTimeProvider().NowMs() - snap.ChangedAt
	fmt.Printf("%s since %s (%s)\n",
		stateLabels[snap.State],
		util.FormatClock(snap.ChangedAt),
		util.FormatDurationMs(elapsed))
	return nil
}
