// Package queuepanel renders the play queue and turns queue keys into
// requests for the playback service.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/ui"
)

// JumpToTrackMsg is sent when the user selects a track to play.
type JumpToTrackMsg struct {
	Index int
}

// ReorderMsg is sent when the user moves the track under the cursor.
type ReorderMsg struct {
	From, To int
}

// Model represents the queue panel state. The queue itself is owned by the
// playback service; the panel only holds the last published copy.
type Model struct {
	ui.Base
	tracks  []playlist.Track
	current int
	shuffle bool
	repeat  playback.RepeatMode
	cursor  int
	offset  int
}

// New creates an empty queue panel.
func New() Model {
	return Model{current: -1}
}

// SetQueue replaces the displayed queue and current index.
func (m *Model) SetQueue(tracks []playlist.Track, current int) {
	m.tracks = tracks
	m.current = current
	if m.cursor >= len(m.tracks) {
		m.cursor = max(len(m.tracks)-1, 0)
	}
	m.ensureCursorVisible()
}

// SetModes updates the shuffle and repeat indicators.
func (m *Model) SetModes(shuffle bool, repeat playback.RepeatMode) {
	m.shuffle = shuffle
	m.repeat = repeat
}

// Cursor returns the cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// Update handles messages for the queue panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.offset = 0
	case "G", "end":
		if len(m.tracks) > 0 {
			m.cursor = len(m.tracks) - 1
			m.ensureCursorVisible()
		}
	case "enter":
		if m.cursor < len(m.tracks) {
			idx := m.cursor
			return m, func() tea.Msg { return JumpToTrackMsg{Index: idx} }
		}
	case "J", "shift+down":
		return m.reorder(1)
	case "K", "shift+up":
		return m.reorder(-1)
	}

	return m, nil
}

// reorder moves the cursor track by delta and follows it with the cursor.
func (m Model) reorder(delta int) (Model, tea.Cmd) {
	from, to := m.cursor, m.cursor+delta
	if from >= len(m.tracks) || to < 0 || to >= len(m.tracks) {
		return m, nil
	}
	m.cursor = to
	m.ensureCursorVisible()
	return m, func() tea.Msg { return ReorderMsg{From: from, To: to} }
}

// SyncCursor moves the cursor to the current track.
func (m *Model) SyncCursor() {
	if m.current >= 0 && m.current < len(m.tracks) {
		m.cursor = m.current
		m.ensureCursorVisible()
	}
}

func (m *Model) moveCursor(delta int) {
	if len(m.tracks) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.tracks)-1)
	m.ensureCursorVisible()
}

// ensureCursorVisible adjusts the scroll offset to keep the cursor in view.
func (m *Model) ensureCursorVisible() {
	listHeight := m.listHeight()
	if listHeight <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}
}

func (m Model) listHeight() int {
	return m.Height() - ui.PanelOverhead
}
