package app

import (
	"strings"
	"testing"
	"testing/synctest"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/ui/queuepanel"
	"github.com/llehouerou/cadence/internal/visualizer"
)

func testTracks(ids ...string) []playlist.Track {
	out := make([]playlist.Track, len(ids))
	for i, id := range ids {
		out[i] = playlist.Track{ID: id, Title: "Track " + id, Source: "/music/" + id + ".mp3"}
	}
	return out
}

// newTestModel must be called inside a synctest bubble; the caller closes
// the returned service.
func newTestModel(t *testing.T) (Model, *player.Mock) {
	t.Helper()
	out := player.NewMock()
	svc := playback.New(player.NewTransport(out, player.WithProcessor(out)))
	m := New(svc, visualizer.Bars)
	m.Width, m.Height = 100, 30
	m.resizeComponents()
	return m, out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	if !ok {
		t.Fatal("Update should return Model")
	}
	return result, cmd
}

func TestUpdate_SpaceStartsCursorTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, out := newTestModel(t)
		defer m.Service.Close()

		m.Service.SetQueue(testTracks("a", "b", "c"))
		m.Queue.SetQueue(m.Service.Queue(), -1)
		m, _ = update(t, m, keyMsg("j"))
		m, _ = update(t, m, keyMsg(" "))
		synctest.Wait()

		if got := out.LoadCalls(); len(got) != 1 || got[0] != "/music/b.mp3" {
			t.Errorf("LoadCalls() = %v, want [/music/b.mp3]", got)
		}
		if !m.Service.IsPlaying() {
			t.Error("service should be playing")
		}

		update(t, m, keyMsg(" "))
		if m.Service.IsPlaying() {
			t.Error("second space should pause")
		}
	})
}

func TestUpdate_EnterJumpsToTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, out := newTestModel(t)
		defer m.Service.Close()

		m.Service.SetQueue(testTracks("a", "b"))
		m, _ = update(t, m, queuepanel.JumpToTrackMsg{Index: 1})
		synctest.Wait()

		if cur := m.Service.CurrentTrack(); cur == nil || cur.ID != "b" {
			t.Errorf("CurrentTrack() = %v, want b", cur)
		}
		if len(out.LoadCalls()) != 1 {
			t.Errorf("LoadCalls() = %v", out.LoadCalls())
		}

		update(t, m, queuepanel.JumpToTrackMsg{Index: 5})
		synctest.Wait()
		if len(out.LoadCalls()) != 1 {
			t.Error("out of range jump should be ignored")
		}
	})
}

func TestUpdate_ModeKeys(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t)
		defer m.Service.Close()
		svc := m.Service

		svc.SetVolume(0.5)
		m, _ = update(t, m, keyMsg("+"))
		if v := svc.Volume(); v < 0.549 || v > 0.551 {
			t.Errorf("Volume() = %v, want 0.55", v)
		}

		m, _ = update(t, m, keyMsg("]"))
		if r := svc.Rate(); r != 1.25 {
			t.Errorf("Rate() = %v, want 1.25", r)
		}

		m, _ = update(t, m, keyMsg("s"))
		if !svc.Shuffle() {
			t.Error("s should enable shuffle")
		}

		m, _ = update(t, m, keyMsg("r"))
		if svc.Repeat() != playback.RepeatOne {
			t.Errorf("Repeat() = %v, want one", svc.Repeat())
		}

		m, _ = update(t, m, keyMsg("E"))
		if p := svc.Snapshot().EqualizerPreset; p != playback.PresetNames()[1] {
			t.Errorf("preset = %q, want %q", p, playback.PresetNames()[1])
		}
		if !svc.EqualizerEnabled() {
			t.Error("selecting a preset should enable the equalizer")
		}

		m, _ = update(t, m, keyMsg("e"))
		if svc.EqualizerEnabled() {
			t.Error("e should disable the equalizer")
		}

		m, _ = update(t, m, keyMsg("v"))
		if m.Visualizer != visualizer.Wave {
			t.Errorf("Visualizer = %v, want wave", m.Visualizer)
		}
	})
}

func TestUpdate_QuitKey(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t)
		defer m.Service.Close()

		_, cmd := update(t, m, keyMsg("q"))
		if cmd == nil {
			t.Fatal("q should return a command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("q should quit")
		}
	})
}

func TestWatchServiceEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t)
		defer m.Service.Close()

		m.Service.ToggleRepeat()
		if _, ok := m.WatchServiceEvents()().(ServiceSettingsChangedMsg); !ok {
			t.Error("repeat toggle should surface as ServiceSettingsChangedMsg")
		}

		m.Service.Enqueue(testTracks("a")[0])
		msg, ok := m.WatchServiceEvents()().(ServiceQueueChangedMsg)
		if !ok || len(msg.Tracks) != 1 {
			t.Errorf("enqueue produced %#v", msg)
		}

		m, _ = update(t, m, msg)
		if !strings.Contains(m.Queue.View(), "Queue (0/1)") {
			t.Error("queue panel should show the new queue")
		}
	})
}

func TestWatchServiceEvents_Closed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t)
		m.Service.Close()

		msg := m.WatchServiceEvents()()
		if _, ok := msg.(ServiceClosedMsg); !ok {
			t.Fatalf("got %#v, want ServiceClosedMsg", msg)
		}
		_, cmd := update(t, m, msg)
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("a closed service should quit the program")
		}
	})
}

func TestUpdate_ErrorMessage(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t)
		defer m.Service.Close()

		queueHeight := m.Queue.Height()

		m, _ = update(t, m, ServiceErrorMsg{Message: "Failed to load track"})
		if !strings.Contains(m.View(), "Failed to load track") {
			t.Error("error should be displayed")
		}
		if m.Queue.Height() != queueHeight-1 {
			t.Errorf("queue height = %d with an error shown, want %d", m.Queue.Height(), queueHeight-1)
		}

		m, _ = update(t, m, keyMsg("esc"))
		if m.ErrorMsg != "" {
			t.Error("esc should dismiss the error")
		}
		if m.Queue.Height() != queueHeight {
			t.Errorf("queue height = %d after dismissing, want %d", m.Queue.Height(), queueHeight)
		}
	})
}

func TestUpdate_FrameStopsWhenNotPlaying(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t)
		defer m.Service.Close()
		m.framing = true

		m, cmd := update(t, m, FrameMsg{})
		if cmd != nil {
			t.Error("expected no frame command when stopped")
		}
		if m.framing {
			t.Error("framing flag should be cleared")
		}
	})
}

func TestUpdate_PlayingStartsFrames(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t)
		defer m.Service.Close()

		m, cmd := update(t, m, ServiceStateChangedMsg{Previous: playback.StatePaused, Current: playback.StatePlaying})
		if cmd == nil || !m.framing {
			t.Error("playing should start the frame loop")
		}

		// a second state change must not start a second loop
		m.framing = true
		_, cmd = update(t, m, ServiceStateChangedMsg{Previous: playback.StatePaused, Current: playback.StatePlaying})
		if cmd == nil {
			t.Fatal("the service watcher should be re-issued")
		}
	})
}

func TestView_Layout(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, _ := newTestModel(t)
		defer m.Service.Close()

		view := m.View()
		if lines := strings.Count(view, "\n") + 1; lines != m.Height {
			t.Errorf("View() has %d lines, want %d", lines, m.Height)
		}
		for _, want := range []string{"Queue (0/0)", "Nothing playing", "space play/pause"} {
			if !strings.Contains(view, want) {
				t.Errorf("View() should contain %q", want)
			}
		}

		m.Width, m.Height = 0, 0
		if m.View() != "" {
			t.Error("zero-size view should be empty")
		}
	})
}

func TestNextPreset(t *testing.T) {
	names := playback.PresetNames()
	if got := nextPreset(playback.PresetOff); got != names[1] {
		t.Errorf("nextPreset(off) = %q, want %q", got, names[1])
	}
	if got := nextPreset(names[len(names)-1]); got != playback.PresetOff {
		t.Errorf("last preset should wrap to off, got %q", got)
	}
	if got := nextPreset(playback.PresetCustom); got != playback.PresetOff {
		t.Errorf("nextPreset(custom) = %q, want off", got)
	}
}
