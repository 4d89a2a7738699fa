// Package playerbar renders the now-playing bar: track, modes and progress.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// Height is the rendered height: two content rows plus the border.
const Height = 4

// State holds everything needed to render the player bar.
type State struct {
	Status           playback.State
	Title            string
	Artist           string
	Album            string
	Elapsed          time.Duration
	Duration         time.Duration
	Volume           float64
	Rate             float64
	Shuffle          bool
	Repeat           playback.RepeatMode
	EqualizerEnabled bool
	EqualizerPreset  string
}

// NewState reads the bar state from the playback service.
func NewState(svc playback.Service) State {
	s := svc.Snapshot()
	st := State{
		Status:           s.State(),
		Volume:           s.Volume,
		Rate:             s.Rate,
		Shuffle:          s.Shuffle,
		Repeat:           s.Repeat,
		EqualizerEnabled: s.EqualizerEnabled,
		EqualizerPreset:  s.EqualizerPreset,
	}
	if t := s.CurrentTrack; t != nil {
		st.Title = t.Title
		st.Artist = t.Artist
		st.Album = t.Album
		st.Elapsed = svc.Elapsed()
		st.Duration = svc.Duration()
		if st.Duration == 0 {
			st.Duration = t.Duration
		}
	}
	return st
}

// Render returns the player bar for the given total width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 10) // border and padding

	top := render.Row(renderTrack(s, innerWidth/2), renderModes(s), innerWidth)
	bottom := renderProgress(s, innerWidth)

	return styles.T().Panel(false).
		Padding(0, 2).
		Width(width - 2).
		Render(top + "\n" + bottom)
}

func renderTrack(s State, maxWidth int) string {
	st := styles.T().S()

	symbol := icons.Stopped()
	switch s.Status {
	case playback.StatePlaying:
		symbol = icons.Playing()
	case playback.StatePaused:
		symbol = icons.Paused()
	case playback.StateStopped:
	}

	if s.Title == "" {
		return st.Muted.Render(symbol + "  Nothing playing")
	}

	title := render.Sanitize(s.Title)
	var info []string
	if s.Artist != "" {
		info = append(info, render.Sanitize(s.Artist))
	}
	if s.Album != "" {
		info = append(info, render.Sanitize(s.Album))
	}

	titleWidth := lipgloss.Width(title)
	out := st.Playing.Render(symbol) + "  " +
		styles.ApplyBoldGradient(render.Truncate(title, maxWidth-3), styles.T().Primary, styles.T().Secondary)
	if rest := maxWidth - 3 - titleWidth - 3; rest > 3 && len(info) > 0 {
		out += "   " + st.Muted.Render(render.Truncate(strings.Join(info, " · "), rest))
	}
	return out
}

// renderModes renders the shuffle, repeat, equalizer, rate and volume badges.
func renderModes(s State) string {
	st := styles.T().S()

	var parts []string
	if s.Shuffle {
		parts = append(parts, icons.Shuffle())
	}
	if badge := repeatBadge(s.Repeat); badge != "" {
		parts = append(parts, badge)
	}
	if s.EqualizerEnabled {
		parts = append(parts, icons.Equalizer(s.EqualizerPreset))
	}
	if s.Rate != 0 && s.Rate != playback.DefaultRate {
		parts = append(parts, fmt.Sprintf("%gx", s.Rate))
	}
	parts = append(parts, fmt.Sprintf("vol %3d%%", int(s.Volume*100+0.5)))

	return st.Mode.Render(strings.Join(parts, "  "))
}

func renderProgress(s State, width int) string {
	st := styles.T().S()

	elapsed := render.Duration(s.Elapsed)
	total := render.Duration(s.Duration)
	barWidth := width - lipgloss.Width(elapsed) - lipgloss.Width(total) - 4
	if barWidth < 5 {
		return st.Muted.Render(elapsed + " / " + total)
	}

	var ratio float64
	if s.Duration > 0 {
		ratio = min(float64(s.Elapsed)/float64(s.Duration), 1)
	}

	bar := progress.New(
		progress.WithGradient(string(styles.T().SpectrumLow), string(styles.T().Primary)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)
	bar.EmptyColor = string(styles.T().FgSubtle)

	return st.Muted.Render(elapsed) + "  " + bar.ViewAs(ratio) + "  " + st.Muted.Render(total)
}

func repeatBadge(mode playback.RepeatMode) string {
	switch mode {
	case playback.RepeatOne:
		return icons.RepeatOne()
	case playback.RepeatAll:
		return icons.RepeatAll()
	case playback.RepeatOff:
	}
	return ""
}
