// Package config loads server settings from an optional YAML file and then
// from GRIDWRIGHT_* environment variables, which win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gridwright/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	// StreamAddr enables the websocket decision stream when set.
	StreamAddr string `yaml:"stream_addr"`
	// DBDSN enables the postgres decision journal when set.
	DBDSN string `yaml:"db_dsn"`
	// ArchiveDir enables the compressed decision archive when set.
	ArchiveDir string `yaml:"archive_dir"`
	LogLevel   string `yaml:"log_level"`

	ReleaseTileOnRemove bool `yaml:"release_tile_on_remove"`

	DefaultMapSize     int    `yaml:"default_map_size"`
	DefaultInitBalance int    `yaml:"default_init_balance"`
	DefaultTeam        string `yaml:"default_team"`

	Tuning world.Tuning `yaml:"tuning"`
}

func Default() Config {
	return Config{
		ListenAddr:         ":5000",
		LogLevel:           "info",
		DefaultMapSize:     25,
		DefaultInitBalance: 300,
		DefaultTeam:        "blue",
		Tuning:             world.DefaultTuning(),
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	c.ListenAddr = stringEnv("GRIDWRIGHT_LISTEN_ADDR", c.ListenAddr)
	c.StreamAddr = stringEnv("GRIDWRIGHT_STREAM_ADDR", c.StreamAddr)
	c.DBDSN = stringEnv("GRIDWRIGHT_DB_DSN", c.DBDSN)
	c.ArchiveDir = stringEnv("GRIDWRIGHT_ARCHIVE_DIR", c.ArchiveDir)
	c.LogLevel = stringEnv("GRIDWRIGHT_LOG_LEVEL", c.LogLevel)
	c.ReleaseTileOnRemove = boolEnv("GRIDWRIGHT_RELEASE_TILE_ON_REMOVE", c.ReleaseTileOnRemove)
	c.DefaultMapSize = intEnv("GRIDWRIGHT_MAP_SIZE", c.DefaultMapSize)
	c.DefaultInitBalance = intEnv("GRIDWRIGHT_INIT_BALANCE", c.DefaultInitBalance)
	c.DefaultTeam = stringEnv("GRIDWRIGHT_TEAM", c.DefaultTeam)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("%w: listen_addr is required", ErrInvalidConfig)
	}
	if c.DefaultMapSize <= 0 {
		return fmt.Errorf("%w: default_map_size must be positive", ErrInvalidConfig)
	}
	if c.DefaultInitBalance < 0 {
		return fmt.Errorf("%w: default_init_balance must be non-negative", ErrInvalidConfig)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// HlogLevel maps log_level onto hlog; unknown values fall back to info.
func (c Config) HlogLevel() hlog.Level {
	lvl, ok := parseLevel(c.LogLevel)
	if !ok {
		return hlog.LevelInfo
	}
	return lvl
}

func parseLevel(raw string) (hlog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return hlog.LevelTrace, true
	case "debug":
		return hlog.LevelDebug, true
	case "", "info":
		return hlog.LevelInfo, true
	case "warn", "warning":
		return hlog.LevelWarn, true
	case "error":
		return hlog.LevelError, true
	default:
		return hlog.LevelInfo, false
	}
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
