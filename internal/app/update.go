package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/ui/queuepanel"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case queuepanel.JumpToTrackMsg:
		queue := m.Service.Queue()
		if msg.Index >= 0 && msg.Index < len(queue) {
			m.Service.Play(queue[msg.Index], queue)
		}
		return m, nil

	case queuepanel.ReorderMsg:
		m.Service.ReorderQueue(msg.From, msg.To)
		return m, nil

	case FrameMsg:
		return m.handleFrame()

	case ServiceStateChangedMsg:
		cmds := []tea.Cmd{m.WatchServiceEvents()}
		if msg.Current == playback.StatePlaying && !m.framing {
			m.framing = true
			cmds = append(cmds, FrameCmd())
		}
		if msg.Current == playback.StateStopped {
			m.spectrum = nil
		}
		return m, tea.Batch(cmds...)

	case ServiceTrackChangedMsg:
		m.setError("")
		m.Queue.SetQueue(m.Service.Queue(), msg.Index)
		m.Queue.SyncCursor()
		return m, m.WatchServiceEvents()

	case ServiceQueueChangedMsg:
		m.Queue.SetQueue(msg.Tracks, msg.Index)
		return m, m.WatchServiceEvents()

	case ServiceSettingsChangedMsg:
		m.Queue.SetModes(m.Service.Shuffle(), m.Service.Repeat())
		return m, m.WatchServiceEvents()

	case ServiceProgressMsg:
		return m, m.WatchServiceEvents()

	case ServiceErrorMsg:
		m.setError(msg.Message)
		return m, m.WatchServiceEvents()

	case ServiceClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

// handleFrame samples the analyser and keeps ticking while playing.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	if !m.Service.IsPlaying() {
		m.framing = false
		return m, nil
	}
	if a := m.Service.Analyser(); a != nil {
		m.spectrum = a.ByteFrequencyData()
	}
	return m, FrameCmd()
}

// setError shows msg above the help line; the queue panel gives up a row
// while it is shown.
func (m *Model) setError(msg string) {
	m.ErrorMsg = msg
	m.resizeComponents()
}
