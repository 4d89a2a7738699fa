package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/ui/playerbar"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
	"github.com/llehouerou/cadence/internal/visualizer"
)

const helpText = "space play/pause  n/p next/prev  ←/→ seek  +/- volume  [/] rate  " +
	"s shuffle  r repeat  e eq  E preset  v visualizer  C clear  q quit"

// layout returns the heights of the visualizer and queue panel.
func (m Model) layout() (vizHeight, queueHeight int) {
	free := m.Height - playerbar.Height - 1 // help line
	if m.ErrorMsg != "" {
		free--
	}
	free = max(free, 0)
	vizHeight = free / 3
	return vizHeight, free - vizHeight
}

func (m *Model) resizeComponents() {
	_, queueHeight := m.layout()
	m.Queue.SetSize(m.Width, queueHeight)
}

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	st := styles.T().S()
	vizHeight, _ := m.layout()

	var sections []string
	if vizHeight > 0 {
		lines := visualizer.Render(m.Visualizer, m.spectrum, m.Width, vizHeight)
		lines = styles.VerticalGradient(lines, styles.T().SpectrumLow, styles.T().SpectrumHigh)
		sections = append(sections, strings.Join(lines, "\n"))
	}
	if q := m.Queue.View(); q != "" {
		sections = append(sections, q)
	}
	sections = append(sections, playerbar.Render(playerbar.NewState(m.Service), m.Width))
	if m.ErrorMsg != "" {
		sections = append(sections, st.Error.Render(render.Truncate(m.ErrorMsg, m.Width)))
	}
	sections = append(sections, st.Subtle.Render(render.Truncate(helpText, m.Width)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
