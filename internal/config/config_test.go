//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/playback"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"tilde with nested path", "~/music/library/albums", filepath.Join(home, "music", "library", "albums")},
		{"absolute path unchanged", "/usr/local/music", "/usr/local/music"},
		{"relative path unchanged", "music/albums", "music/albums"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := expandPath(tt.input); result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	if last := paths[len(paths)-1]; last != "config.toml" {
		t.Errorf("last config path = %q, want %q", last, "config.toml")
	}
	if len(paths) > 1 && !filepath.IsAbs(paths[0]) {
		t.Errorf("user config path %q is not absolute", paths[0])
	}
}

func TestLoadFrom_NoFiles(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.InDelta(t, 0.7, cfg.Volume, 1e-9)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Equal(t, 16*time.Millisecond, cfg.ProgressInterval())
	assert.Equal(t, 5*time.Second, cfg.Notifications.Timeout())
	assert.True(t, cfg.RestoreSession)
	assert.True(t, cfg.Notifications.Enabled)
	assert.True(t, cfg.MPRIS.Enabled)
	assert.False(t, cfg.HasLastfmConfig())
}

func TestLoadFrom_AllKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.toml", `
volume = 0.4
rate = 1.5
equalizer_preset = "Jazz"
shuffle = true
repeat = "ALL"
sample_rate = 48000
progress_interval_ms = 50
database = "~/cadence.db"
log_level = "debug"
restore_session = false
visualizer = "circle"
icons = "nerd"

[lastfm]
api_key = "key"
api_secret = "secret"
session_key = "session"

[notifications]
enabled = false
timeout_ms = 0

[mpris]
enabled = false
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.4, cfg.Volume, 1e-9)
	assert.InDelta(t, 1.5, cfg.Rate, 1e-9)
	assert.Equal(t, "jazz", cfg.EqualizerPreset)
	assert.True(t, cfg.Shuffle)
	assert.Equal(t, "all", cfg.Repeat)
	assert.Equal(t, 48000, cfg.SampleRate)
	assert.Equal(t, 50*time.Millisecond, cfg.ProgressInterval())
	if home, err := os.UserHomeDir(); err == nil {
		assert.Equal(t, filepath.Join(home, "cadence.db"), cfg.Database)
	}
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.False(t, cfg.RestoreSession)
	assert.Equal(t, "circle", cfg.Visualizer)
	assert.Equal(t, "nerd", cfg.Icons)
	assert.True(t, cfg.HasLastfmConfig())
	assert.Equal(t, "session", cfg.Lastfm.SessionKey)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Zero(t, cfg.Notifications.Timeout())
	assert.False(t, cfg.MPRIS.Enabled)
}

func TestLoadFrom_LastWins(t *testing.T) {
	dir := t.TempDir()
	user := writeConfig(t, dir, "user.toml", "volume = 0.2\nshuffle = true\n")
	local := writeConfig(t, dir, "local.toml", "volume = 0.9\n")

	cfg, err := LoadFrom(user, local)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, cfg.Volume, 1e-9)
	assert.True(t, cfg.Shuffle, "keys absent from the later file are kept")
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"volume too high", "volume = 1.5"},
		{"rate too low", "rate = 0.1"},
		{"unknown repeat", `repeat = "forever"`},
		{"unknown preset", `equalizer_preset = "metal"`},
		{"zero sample rate", "sample_rate = 0"},
		{"negative interval", "progress_interval_ms = -1"},
		{"bad log level", `log_level = "loud"`},
		{"bad visualizer", `visualizer = "spiral"`},
		{"bad icons", `icons = "emoji"`},
		{"malformed toml", "volume = "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.toml", tt.content)
			_, err := LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)

	path := writeConfig(t, t.TempDir(), "c.toml", `repeat = "one"`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "one", cfg.Repeat)
}

func TestSettings(t *testing.T) {
	cfg := Default()
	cfg.Volume = 0.5
	cfg.Repeat = "one"
	cfg.Shuffle = true
	cfg.EqualizerPreset = "rock"

	st := cfg.Settings()

	assert.InDelta(t, 0.5, st.Volume, 1e-9)
	assert.Equal(t, playback.RepeatOne, st.Repeat)
	assert.True(t, st.Shuffle)
	assert.True(t, st.EqualizerEnabled)
	_, rock := playback.Preset("rock")
	assert.Equal(t, rock, st.EqualizerGains)
	assert.Empty(t, st.Queue)

	off := Default().Settings()
	assert.False(t, off.EqualizerEnabled)
	assert.Equal(t, playback.Gains{}, off.EqualizerGains)
}
