package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is the visualizer redraw period.
const FrameInterval = 33 * time.Millisecond

// FrameCmd returns a command that sends FrameMsg after one frame.
func FrameCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// WatchServiceEvents returns a command that waits for the next playback
// service event and converts it to a tea.Msg. The model re-issues it after
// every service message.
func (m Model) WatchServiceEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg{Previous: e.Previous, Current: e.Current}
		case e := <-sub.TrackChanged:
			return ServiceTrackChangedMsg{Track: e.Current, Index: e.Index}
		case e := <-sub.ProgressChanged:
			return ServiceProgressMsg{Progress: e.Progress}
		case e := <-sub.QueueChanged:
			return ServiceQueueChangedMsg{Tracks: e.Tracks, Index: e.Index}
		case <-sub.ModeChanged:
			return ServiceSettingsChangedMsg{}
		case <-sub.OutputChanged:
			return ServiceSettingsChangedMsg{}
		case <-sub.EqualizerChanged:
			return ServiceSettingsChangedMsg{}
		case e := <-sub.Error:
			return ServiceErrorMsg{Message: e.Message()}
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}
