package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults for the simulated track.
const (
	DefaultTitle  = "So Long, London"
	DefaultArtist = "Taylor Swift"
)

// Cover art rendering modes.
const (
	CoverArtAuto  = "auto"
	CoverArtKitty = "kitty"
	CoverArtNone  = "none"
)

type Config struct {
	Icons     string `koanf:"icons"`      // "nerd", "unicode", or "none"
	TrackPath string `koanf:"track_path"` // audio file whose tags and cover are shown
	Title     string `koanf:"title"`
	Artist    string `koanf:"artist"`
	CoverPath string `koanf:"cover_path"` // explicit cover image, overrides embedded art
	CoverArt  string `koanf:"cover_art"`  // "auto", "kitty", or "none"

	// MPRIS is a pointer so an absent key can default to enabled.
	MPRIS *bool `koanf:"mpris"`

	Notifications bool `koanf:"notifications"` // desktop notification when playback starts

	Playback PlaybackConfig `koanf:"playback"`
	Log      LogConfig      `koanf:"log"`
}

// PlaybackConfig holds the simulated playback timings.
type PlaybackConfig struct {
	TickIntervalMS int `koanf:"tick_interval_ms"` // default: 1000
	LoaderWindowMS int `koanf:"loader_window_ms"` // default: 1000
}

// TickInterval returns the tick interval as a duration.
func (p PlaybackConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMS) * time.Millisecond
}

// LoaderWindow returns the loader window as a duration.
func (p PlaybackConfig) LoaderWindow() time.Duration {
	return time.Duration(p.LoaderWindowMS) * time.Millisecond
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error", or "off"
	File  string `koanf:"file"`  // empty means the XDG state dir
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"off":   true,
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		Title:    DefaultTitle,
		Artist:   DefaultArtist,
		CoverArt: CoverArtAuto,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.TrackPath = expandPath(cfg.TrackPath)
	cfg.CoverPath = expandPath(cfg.CoverPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	cfg.CoverArt = strings.ToLower(strings.TrimSpace(cfg.CoverArt))
	switch cfg.CoverArt {
	case "":
		cfg.CoverArt = CoverArtAuto
	case CoverArtAuto, CoverArtKitty, CoverArtNone:
	default:
		return nil, fmt.Errorf("invalid cover_art %q: want auto, kitty or none", cfg.CoverArt)
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level != "" && !validLogLevels[cfg.Log.Level] {
		return nil, fmt.Errorf("invalid log level %q", cfg.Log.Level)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/nowplaying/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "nowplaying", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// MPRISEnabled returns true unless MPRIS was explicitly disabled.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// HasTrackFile returns true if a track file is configured.
func (c *Config) HasTrackFile() bool {
	return c.TrackPath != ""
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.TickIntervalMS <= 0 {
		cfg.TickIntervalMS = 1000
	}
	if cfg.LoaderWindowMS <= 0 {
		cfg.LoaderWindowMS = 1000
	}

	return cfg
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	if cfg.Level == "" {
		cfg.Level = "info"
	}

	return cfg
}
