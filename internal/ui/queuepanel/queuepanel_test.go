package queuepanel

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/playlist"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func fiveTracks() []playlist.Track {
	return []playlist.Track{
		testTrack("a", ""), testTrack("b", ""), testTrack("c", ""),
		testTrack("d", ""), testTrack("e", ""),
	}
}

func focusedPanel() Model {
	m := New()
	m.SetSize(40, 7) // three visible rows
	m.SetQueue(fiveTracks(), 0)
	m.SetFocused(true)
	return m
}

func TestUpdate_IgnoredWhenUnfocused(t *testing.T) {
	m := focusedPanel()
	m.SetFocused(false)

	m, cmd := m.Update(key("j"))
	if m.Cursor() != 0 || cmd != nil {
		t.Errorf("unfocused panel reacted: cursor=%d cmd=%v", m.Cursor(), cmd != nil)
	}
}

func TestUpdate_CursorMovement(t *testing.T) {
	m := focusedPanel()

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("down"))
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor())
	}

	m, _ = m.Update(key("G"))
	if m.Cursor() != 4 {
		t.Errorf("G: cursor = %d, want 4", m.Cursor())
	}
	if m.offset != 2 {
		t.Errorf("offset = %d, want 2 to keep the cursor visible", m.offset)
	}

	m, _ = m.Update(key("j"))
	if m.Cursor() != 4 {
		t.Errorf("cursor moved past the end: %d", m.Cursor())
	}

	m, _ = m.Update(key("g"))
	if m.Cursor() != 0 || m.offset != 0 {
		t.Errorf("g: cursor=%d offset=%d, want 0 0", m.Cursor(), m.offset)
	}

	m, _ = m.Update(key("k"))
	if m.Cursor() != 0 {
		t.Errorf("cursor moved before the start: %d", m.Cursor())
	}
}

func TestUpdate_EnterJumps(t *testing.T) {
	m := focusedPanel()
	m, _ = m.Update(key("j"))

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter should produce a command")
	}
	msg, ok := cmd().(JumpToTrackMsg)
	if !ok || msg.Index != 1 {
		t.Errorf("enter produced %#v, want JumpToTrackMsg{Index: 1}", msg)
	}
}

func TestUpdate_Reorder(t *testing.T) {
	m := focusedPanel()
	m, _ = m.Update(key("j"))

	m, cmd := m.Update(key("J"))
	if cmd == nil {
		t.Fatal("J should produce a command")
	}
	if msg := cmd().(ReorderMsg); msg.From != 1 || msg.To != 2 {
		t.Errorf("J produced %#v, want {1 2}", msg)
	}
	if m.Cursor() != 2 {
		t.Errorf("cursor should follow the moved track, got %d", m.Cursor())
	}

	m, _ = m.Update(key("g"))
	if _, cmd = m.Update(key("K")); cmd != nil {
		t.Error("K at the top should do nothing")
	}
}

func TestSetQueue_ClampsCursor(t *testing.T) {
	m := focusedPanel()
	m, _ = m.Update(key("G"))

	m.SetQueue(fiveTracks()[:2], 1)
	if m.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1 after the queue shrank", m.Cursor())
	}

	m.SetQueue(nil, -1)
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0 for an empty queue", m.Cursor())
	}
}

func TestSyncCursor(t *testing.T) {
	m := focusedPanel()
	m.SetQueue(fiveTracks(), 3)
	m.SyncCursor()
	if m.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor())
	}
}
