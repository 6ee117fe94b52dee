package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Arrognz/babycheck/internal/config"
	"github.com/Arrognz/babycheck/internal/data/store"
	"github.com/Arrognz/babycheck/internal/tracker"
	"github.com/Arrognz/babycheck/internal/util"
)

var (
	// Logging related
	debug bool

	// Configuration
	configPath string
	storeType  string
	filePath   string
	redisURL   string
	redisKey   string
	timezone   string

	// Output related
	outputFormat string

	rootCmd = &cobra.Command{
		Use:   "babycheck [flags]",
		Short: "Baby activity tracking from a simple event log",
		Long: `babycheck records sleep, feeding, diaper and cry events and derives
everything else: the current state, reconstructed sessions, windowed
statistics and day timelines.

Examples:
  babycheck add sleep                     # Log that the baby fell asleep now
  babycheck add wake --ago 5m             # Log a wake five minutes back
  babycheck stats --period day            # Statistics for the last 24 hours
  babycheck state                         # What is the baby doing right now
  babycheck day 2025-06-11                # Timeline of one day
  babycheck serve --listen :8089          # HTTP API for phones
  babycheck watch                         # Live-updating state on log changes`,
		RunE: runStats,
	}
)

const defaultLogFile = "~/.babycheck/logs/app.log"

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default ~/.babycheck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeType, "store", "",
		"Event store backend (file, redis)")
	rootCmd.PersistentFlags().StringVar(&filePath, "file", "",
		"Event log path for the file store")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis-url", "",
		"Redis URL for the redis store")
	rootCmd.PersistentFlags().StringVar(&redisKey, "redis-key", "",
		"Redis sorted set key")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone for day boundaries (e.g., Europe/Paris, UTC)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")

	rootCmd.Flags().StringVarP(&statsPeriod, "period", "p", "day",
		"Statistics period (hour, day, days2, week, thisweek)")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file and folds the command line flags over
// it; flags win.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if storeType != "" {
		cfg.Store.Type = storeType
	}
	if filePath != "" {
		cfg.Store.FilePath = expandPath(filePath)
	}
	if redisURL != "" {
		cfg.Store.RedisURL = redisURL
	}
	if redisKey != "" {
		cfg.Store.RedisKey = redisKey
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup initializes logging and the timezone, then opens the configured
// store wrapped in a tracker. The caller owns the returned tracker.
func setup(ctx context.Context) (*tracker.Tracker, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = expandPath(defaultLogFile)
	}
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	util.InitLogger(cfg.LogLevel, logFile, debug)

	tz := cfg.Timezone
	if tz == "" {
		tz = "Local"
	}
	if err := util.InitializeTimeProvider(tz); err != nil {
		return nil, nil, err
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return tracker.New(s, tracker.WithPrefetchDebounce(cfg.Server.PrefetchDebounce)), cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Type {
	case config.StoreRedis:
		return store.NewRedisStore(ctx, cfg.Store.RedisURL, cfg.Store.RedisKey)
	default:
		return store.NewFileStore(expandPath(cfg.Store.FilePath))
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
