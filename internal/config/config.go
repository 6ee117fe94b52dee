package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Server ServerConfig `yaml:"server"`

	// Timezone resolves day boundaries and period anchors, e.g.
	// "Europe/Paris". Empty means the system local zone.
	Timezone string `yaml:"timezone"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

type StoreConfig struct {
	Type     string `yaml:"type"`
	FilePath string `yaml:"file_path"`
	RedisURL string `yaml:"redis_url"`
	RedisKey string `yaml:"redis_key"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
	// Debounce for warming adjacent days around a viewed day.
	PrefetchDebounce time.Duration `yaml:"prefetch_debounce"`
}

// DefaultPath is the per-user config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".babycheck", "config.yaml")
}

func defaults() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Store: StoreConfig{
			Type:     StoreFile,
			FilePath: filepath.Join(home, ".babycheck", "events.jsonl"),
			RedisURL: "redis://localhost:6379",
			RedisKey: "babyevents",
		},
		Server: ServerConfig{
			Listen:           ":8089",
			PrefetchDebounce: 500 * time.Millisecond,
		},
		LogLevel: "info",
	}
}

// Load reads path over the built-in defaults. A missing file yields the
// defaults; a present but unreadable one is an error.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store type %q (valid: file, redis)", c.Store.Type)
	}
	if c.Store.Type == StoreFile && c.Store.FilePath == "" {
		return fmt.Errorf("store.file_path is required for the file store")
	}
	if c.Store.Type == StoreRedis && c.Store.RedisURL == "" {
		return fmt.Errorf("store.redis_url is required for the redis store")
	}
	return nil
}
