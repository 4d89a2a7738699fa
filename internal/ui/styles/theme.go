// Package styles holds the color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the player.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Purple - current track, active modes
	Secondary lipgloss.Color // Gold - equalizer and rate indicators

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color // Queue cursor highlight

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Visualizer gradient, bottom to top
	SpectrumLow  lipgloss.Color
	SpectrumHigh lipgloss.Color

	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style // Current queue entry
	Played  lipgloss.Style // Queue entries before the current one
	Cursor  lipgloss.Style
	Mode    lipgloss.Style // Shuffle/repeat/equalizer badges
	Error   lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	SpectrumLow:  lipgloss.Color("#42b883"),
	SpectrumHigh: lipgloss.Color("#a78bfa"),

	Error: lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for the theme, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

// Panel returns the bordered panel style for the given focus state.
func (t *Theme) Panel(focused bool) lipgloss.Style {
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Played: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Mode:  lipgloss.NewStyle().Foreground(t.Secondary),
		Error: lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}
