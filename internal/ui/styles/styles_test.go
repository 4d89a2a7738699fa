package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestBlendColors_Endpoints(t *testing.T) {
	from, to := lipgloss.Color("#a78bfa"), lipgloss.Color("#42b883")
	colors := blendColors(5, from, to)
	assert.Len(t, colors, 5)

	first, _ := colorful.MakeColor(colors[0])
	last, _ := colorful.MakeColor(colors[4])
	want1, _ := colorful.Hex("#a78bfa")
	want2, _ := colorful.Hex("#42b883")
	assert.Less(t, first.DistanceRgb(want1), 0.01)
	assert.Less(t, last.DistanceRgb(want2), 0.01)

	assert.Len(t, blendColors(1, from, to), 1)
}

func TestLipglossToColor_ANSIFallback(t *testing.T) {
	c, ok := colorful.MakeColor(lipglossToColor(lipgloss.Color("240")))
	assert.True(t, ok)
	assert.Equal(t, "#808080", c.Hex())
}

func TestApplyGradient_KeepsText(t *testing.T) {
	assert.Empty(t, ApplyGradient("", T().Primary, T().Secondary))

	out := ApplyGradient("cadence", T().Primary, T().Secondary)
	assert.Equal(t, "cadence", stripANSI(out))
}

func TestVerticalGradient(t *testing.T) {
	assert.Empty(t, VerticalGradient(nil, T().SpectrumLow, T().SpectrumHigh))

	lines := []string{"top", "mid", "low"}
	out := VerticalGradient(lines, T().SpectrumLow, T().SpectrumHigh)
	assert.Len(t, out, 3)
	for i := range lines {
		assert.Equal(t, lines[i], stripANSI(out[i]))
	}
}

func TestTheme_Styles(t *testing.T) {
	th := T()
	assert.Same(t, th.S(), th.S())
	assert.NotEqual(t, th.Panel(true).GetBorderTopForeground(), th.Panel(false).GetBorderTopForeground())
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var out []rune
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			out = append(out, r)
		}
	}
	return string(out)
}
