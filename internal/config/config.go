// Package config loads the player configuration from TOML files.
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
	"github.com/rs/zerolog"

	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/visualizer"
)

// Defaults applied before any file is loaded.
const (
	DefaultVolume           = 0.7
	DefaultSampleRate       = 44100
	DefaultProgressInterval = 16   // milliseconds, one rendering frame
	DefaultNotifyTimeout    = 5000 // milliseconds
	DefaultLogLevel         = "info"
)

type Config struct {
	Volume             float64 `koanf:"volume"`
	Rate               float64 `koanf:"rate"`
	EqualizerPreset    string  `koanf:"equalizer_preset"`
	Shuffle            bool    `koanf:"shuffle"`
	Repeat             string  `koanf:"repeat"` // "off", "one" or "all"
	SampleRate         int     `koanf:"sample_rate"`
	ProgressIntervalMS int     `koanf:"progress_interval_ms"`
	Database           string  `koanf:"database"` // empty means the XDG data file
	LogLevel           string  `koanf:"log_level"`
	RestoreSession     bool    `koanf:"restore_session"`
	Visualizer         string  `koanf:"visualizer"` // "bars", "wave" or "circle"
	Icons              string  `koanf:"icons"`      // "nerd", "unicode" or "none"

	// Last.fm now-playing updates (enabled when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Notifications NotificationsConfig `koanf:"notifications"`
	MPRIS         MPRISConfig         `koanf:"mpris"`
}

// LastfmConfig holds Last.fm configuration. SessionKey is filled by
// "cadence lastfm login".
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

// NotificationsConfig controls desktop notifications on track change.
type NotificationsConfig struct {
	Enabled   bool `koanf:"enabled"`
	TimeoutMS int  `koanf:"timeout_ms"` // 0 never expires, -1 server default
}

// Timeout returns how long a track notification stays up.
func (n NotificationsConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutMS) * time.Millisecond
}

// MPRISConfig controls the D-Bus media player interface.
type MPRISConfig struct {
	Enabled bool `koanf:"enabled"`
}

// Default returns the configuration used when no file sets a key.
func Default() *Config {
	return &Config{
		Volume:             DefaultVolume,
		Rate:               playback.DefaultRate,
		EqualizerPreset:    playback.PresetOff,
		Repeat:             playback.RepeatOff.String(),
		SampleRate:         DefaultSampleRate,
		ProgressIntervalMS: DefaultProgressInterval,
		LogLevel:           DefaultLogLevel,
		RestoreSession:     true,
		Visualizer:         visualizer.Bars.String(),
		Icons:              string(icons.StyleNone),
		Notifications:      NotificationsConfig{Enabled: true, TimeoutMS: DefaultNotifyTimeout},
		MPRIS:              MPRISConfig{Enabled: true},
	}
}

// Load reads the config files in priority order. A non-empty explicit path
// replaces the search list and must exist.
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		return LoadFrom(explicit)
	}
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads each existing path in order (last wins) over the defaults
// and validates the result.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Database != "" {
		cfg.Database = expandPath(cfg.Database)
	}
	cfg.Repeat = strings.ToLower(strings.TrimSpace(cfg.Repeat))
	cfg.EqualizerPreset = strings.ToLower(strings.TrimSpace(cfg.EqualizerPreset))
	if cfg.EqualizerPreset == "" {
		cfg.EqualizerPreset = playback.PresetOff
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/cadence/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cadence", "config.toml"))
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

// Validate rejects values the player cannot start with.
func (c *Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume %v out of range [0, 1]", c.Volume)
	}
	if c.Rate < playback.MinRate || c.Rate > playback.MaxRate {
		return fmt.Errorf("rate %v out of range [%v, %v]", c.Rate, playback.MinRate, playback.MaxRate)
	}
	if _, err := playback.ParseRepeatMode(c.Repeat); err != nil {
		return err
	}
	if name, _ := playback.Preset(c.EqualizerPreset); name != c.EqualizerPreset {
		return fmt.Errorf("unknown equalizer preset %q", c.EqualizerPreset)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.ProgressIntervalMS <= 0 {
		return fmt.Errorf("progress_interval_ms must be positive, got %d", c.ProgressIntervalMS)
	}
	if c.Notifications.TimeoutMS < -1 {
		return fmt.Errorf("notifications.timeout_ms must be -1 or more, got %d", c.Notifications.TimeoutMS)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := visualizer.ParseKind(c.Visualizer); err != nil {
		return err
	}
	if !icons.Valid(c.Icons) {
		return fmt.Errorf("unknown icon style %q", c.Icons)
	}
	return nil
}

// HasLastfmConfig returns true if Last.fm credentials are configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// ProgressInterval returns the progress sampling period.
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.ProgressIntervalMS) * time.Millisecond
}

// Level returns the configured log level. Validate has already checked it.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Settings returns the starting playback settings described by the
// config, with an empty queue.
func (c *Config) Settings() playback.Settings {
	repeat, _ := playback.ParseRepeatMode(c.Repeat)
	preset, gains := playback.Preset(c.EqualizerPreset)
	return playback.Settings{
		Volume:           c.Volume,
		Rate:             c.Rate,
		Shuffle:          c.Shuffle,
		Repeat:           repeat,
		EqualizerEnabled: preset != playback.PresetOff,
		EqualizerPreset:  preset,
		EqualizerGains:   gains,
	}
}
