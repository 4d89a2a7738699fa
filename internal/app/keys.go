package app

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/playback"
)

// Output adjustment steps.
const (
	SeekStep   = 5.0 // percent
	VolumeStep = 0.05
	RateStep   = 0.25
)

// handleKey maps keys onto service operations. Keys the player does not
// claim go to the queue panel.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	svc := m.Service

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.togglePlayback()
	case "n", "l":
		svc.SkipNext()
	case "p", "h":
		svc.SkipPrevious()
	case "right":
		svc.Seek(min(svc.Progress()+SeekStep, 100))
	case "left":
		svc.Seek(max(svc.Progress()-SeekStep, 0))
	case "+", "=":
		svc.SetVolume(svc.Volume() + VolumeStep)
	case "-":
		svc.SetVolume(svc.Volume() - VolumeStep)
	case "]":
		svc.SetRate(svc.Rate() + RateStep)
	case "[":
		svc.SetRate(svc.Rate() - RateStep)
	case "s":
		svc.ToggleShuffle()
	case "r":
		svc.ToggleRepeat()
	case "e":
		svc.ToggleEqualizer()
	case "E":
		svc.SetEqualizerPreset(nextPreset(svc.Snapshot().EqualizerPreset))
	case "v":
		m.Visualizer = m.Visualizer.Next()
	case "C":
		svc.ClearQueue()
	case "esc":
		m.setError("")
	default:
		var cmd tea.Cmd
		m.Queue, cmd = m.Queue.Update(msg)
		return m, cmd
	}
	return m, nil
}

// togglePlayback pauses or resumes the current track, or starts the track
// under the queue cursor when nothing is current.
func (m Model) togglePlayback() {
	if m.Service.State().IsActive() {
		m.Service.PlayPause()
		return
	}
	queue := m.Service.Queue()
	if idx := m.Queue.Cursor(); idx < len(queue) {
		m.Service.Play(queue[idx], queue)
	}
}

// nextPreset returns the preset after current in PresetNames order,
// wrapping around. Custom gains move to off.
func nextPreset(current string) string {
	names := playback.PresetNames()
	i := slices.Index(names, current)
	return names[(i+1)%len(names)]
}
