package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/playback"
)

func plain(s string) string { return ansi.Strip(s) }

func playingState() State {
	return State{
		Status:   playback.StatePlaying,
		Title:    "So What",
		Artist:   "Miles Davis",
		Album:    "Kind of Blue",
		Elapsed:  83 * time.Second,
		Duration: 9*time.Minute + 22*time.Second,
		Volume:   0.7,
		Rate:     1,
	}
}

func TestRender_Playing(t *testing.T) {
	out := plain(Render(playingState(), 100))

	assert.Contains(t, out, icons.Playing())
	assert.Contains(t, out, "So What")
	assert.Contains(t, out, "Miles Davis · Kind of Blue")
	assert.Contains(t, out, "1:23")
	assert.Contains(t, out, "9:22")
	assert.Contains(t, out, "vol  70%")
	assert.Len(t, strings.Split(out, "\n"), Height)
}

func TestRender_FitsWidth(t *testing.T) {
	s := playingState()
	s.Title = strings.Repeat("Very Long Title ", 20)

	for _, width := range []int{40, 80, 120} {
		for _, line := range strings.Split(Render(s, width), "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), width)
		}
	}
}

func TestRender_Stopped(t *testing.T) {
	out := plain(Render(State{Volume: 1}, 80))

	assert.Contains(t, out, icons.Stopped())
	assert.Contains(t, out, "Nothing playing")
	assert.Contains(t, out, "0:00")
}

func TestRenderModes(t *testing.T) {
	tests := []struct {
		name string
		s    State
		want string
	}{
		{"defaults", State{Volume: 1, Rate: 1}, "vol 100%"},
		{"shuffle", State{Shuffle: true, Volume: 0.5, Rate: 1}, "shuffle  vol  50%"},
		{"repeat one", State{Repeat: playback.RepeatOne, Rate: 1}, "repeat one  vol   0%"},
		{"equalizer", State{EqualizerEnabled: true, EqualizerPreset: "rock", Rate: 1}, "eq rock  vol   0%"},
		{"rate", State{Rate: 1.5}, "1.5x  vol   0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plain(renderModes(tt.s)))
		})
	}
}

func TestRender_Paused(t *testing.T) {
	s := playingState()
	s.Status = playback.StatePaused
	assert.Contains(t, plain(Render(s, 80)), icons.Paused())
}
