package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Arrognz/babycheck/internal/config"
	"github.com/Arrognz/babycheck/internal/core/state"
	"github.com/Arrognz/babycheck/internal/presentation/display"
	"github.com/Arrognz/babycheck/internal/tracker"
	"github.com/Arrognz/babycheck/internal/util"
	"golang.org/x/term"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view that follows the event log",
	Long: `Renders the current state and today's timeline, redrawing whenever
the log file changes. Other devices appending to the same file show up
immediately. File store only.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tr, cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer tr.Close()

	if cfg.Store.Type != config.StoreFile {
		return fmt.Errorf("watch requires the file store, got %q", cfg.Store.Type)
	}
	logPath := expandPath(cfg.Store.FilePath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: rewrites replace the file via rename, which
	// silently drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(logPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(logPath), err)
	}

	if err := redraw(ctx, tr); err != nil {
		return err
	}

	// Coalesce bursts of writes into one redraw.
	var pending *time.Timer
	redrawCh := make(chan struct{}, 1)
	scheduleRedraw := func() {
		if pending != nil {
			pending.Stop()
		}
		pending = time.AfterFunc(250*time.Millisecond, func() {
			select {
			case redrawCh <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(logPath) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				scheduleRedraw()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.LogWarnf("watch error: %v", err)
		case <-redrawCh:
			tr.InvalidateCache()
			if err := redraw(ctx, tr); err != nil {
				return err
			}
		}
	}
}

func redraw(ctx context.Context, tr *tracker.Tracker) error {
	snap, err := tr.CurrentState(ctx)
	if err != nil {
		return err
	}
	dayKey := util.GetTimeProvider().Now().Format("2006-01-02")
	items, err := tr.Day(ctx, dayKey)
	if err != nil {
		return err
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if isTTY {
		fmt.Print("\033[2J\033[H")
	}

	if snap.State == state.StateUnknown {
		fmt.Println(stateLabels[snap.State])
	} else {
		elapsed := util.GetTimeProvider().NowMs() - snap.ChangedAt
		fmt.Printf("%s since %s (%s)\n\n",
			stateLabels[snap.State],
			util.FormatClock(snap.ChangedAt),
			util.FormatDurationMs(elapsed))
	}
	display.NewDayRenderer(os.Stdout, isTTY).Render(dayKey, items)
	return nil
}
