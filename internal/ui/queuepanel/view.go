package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/icons"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/ui"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	listHeight := max(m.listHeight(), 0)

	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderTrackList(innerWidth, listHeight)

	return styles.T().Panel(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// renderHeader renders the track count on the left and mode badges on the right.
func (m Model) renderHeader(innerWidth int) string {
	position := 0
	if m.current >= 0 {
		position = m.current + 1
	}
	left := fmt.Sprintf("Queue (%d/%d)", position, len(m.tracks))

	var modes []string
	if m.shuffle {
		modes = append(modes, icons.Shuffle())
	}
	switch m.repeat {
	case playback.RepeatOne:
		modes = append(modes, icons.RepeatOne())
	case playback.RepeatAll:
		modes = append(modes, icons.RepeatAll())
	case playback.RepeatOff:
	}
	right := strings.Join(modes, " ")

	leftWidth := innerWidth - lipgloss.Width(right)
	if right != "" {
		leftWidth--
		right += " "
	}
	st := styles.T().S()
	return st.Title.Render(render.TruncateAndPad(left, leftWidth)) + st.Mode.Render(right)
}

func (m Model) renderTrackList(innerWidth, listHeight int) string {
	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := i + m.offset
		if idx >= len(m.tracks) {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(m.tracks[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderTrackLine renders "▶ title  artist" in two columns.
func (m Model) renderTrackLine(track playlist.Track, idx, width int) string {
	prefix := "  "
	if idx == m.current {
		prefix = icons.Playing() + " "
	}

	contentWidth := max(width-2, 0)
	titleWidth := contentWidth / 2
	artistWidth := contentWidth - titleWidth

	line := prefix +
		render.TruncateAndPad(track.Title, titleWidth) +
		render.TruncateAndPad(track.Artist, artistWidth)

	return m.trackStyle(idx).Render(line)
}

func (m Model) trackStyle(idx int) lipgloss.Style {
	st := styles.T().S()
	isCursor := idx == m.cursor && m.IsFocused()
	isPlaying := idx == m.current
	isPlayed := m.current >= 0 && idx < m.current

	switch {
	case isCursor && isPlaying:
		return st.Cursor.Inherit(st.Playing)
	case isCursor && isPlayed:
		return st.Cursor.Inherit(st.Played)
	case isCursor:
		return st.Cursor
	case isPlaying:
		return st.Playing
	case isPlayed:
		return st.Played
	default:
		return st.Base
	}
}
