package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/afterglow/internal/logging"
	"github.com/aretw0/afterglow/internal/runtime"
	"github.com/aretw0/afterglow/pkg/adapters/redis"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up when no --config flag is given.
const DefaultPath = "afterglow.yaml"

// Config holds everything the CLI needs to build and expose a tracker.
type Config struct {
	HistorySize int    `yaml:"history_size" json:"history_size"`
	LogLevel    string `yaml:"log_level" json:"log_level"`

	Layout  LayoutConfig  `yaml:"layout" json:"layout"`
	HTTP    HTTPConfig    `yaml:"http" json:"http"`
	Redis   RedisConfig   `yaml:"redis" json:"redis"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// LayoutConfig points at the state catalog. Dir (a Loam repository) wins over File.
type LayoutConfig struct {
	Dir  string `yaml:"dir" json:"dir"`
	File string `yaml:"file" json:"file"`
}

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// RedisConfig configures the pub/sub transport. An empty Addr disables it.
type RedisConfig struct {
	Addr          string `yaml:"addr" json:"addr"`
	Password      string `yaml:"password" json:"password"`
	DB            int    `yaml:"db" json:"db"`
	EventsChannel string `yaml:"events_channel" json:"events_channel"`
	NotifyChannel string `yaml:"notify_channel" json:"notify_channel"`
}

// MetricsConfig toggles Prometheus instrumentation.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		HistorySize: runtime.DefaultHistorySize,
		LogLevel:    "info",
		HTTP:        HTTPConfig{Addr: ":8080"},
		Redis: RedisConfig{
			EventsChannel: redis.DefaultEventsChannel,
			NotifyChannel: redis.DefaultNotifyChannel,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads a YAML or JSON file over the defaults.
// A missing file is not an error unless the path was explicitly required.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the tracker cannot run with.
func (c Config) Validate() error {
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Redis.Addr != "" && (c.Redis.EventsChannel == "" || c.Redis.NotifyChannel == "") {
		return errors.New("redis channels must be set when redis.addr is configured")
	}
	return nil
}
