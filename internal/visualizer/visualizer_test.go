package visualizer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(v byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestKind_NextCycles(t *testing.T) {
	assert.Equal(t, Wave, Bars.Next())
	assert.Equal(t, Circle, Wave.Next())
	assert.Equal(t, Bars, Circle.Next())
	assert.Equal(t, Bars, Bars.Next().Next().Next())
}

func TestKind_StringAndParse(t *testing.T) {
	for _, k := range []Kind{Bars, Wave, Circle} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("spiral")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestRender_Dimensions(t *testing.T) {
	data := filled(128, 128)
	for _, k := range []Kind{Bars, Wave, Circle} {
		t.Run(k.String(), func(t *testing.T) {
			lines := Render(k, data, 40, 10)
			require.Len(t, lines, 10)
			for _, l := range lines {
				assert.Equal(t, 40, utf8.RuneCountInString(l))
			}
		})
	}
	assert.Nil(t, Render(Bars, data, 0, 10))
	assert.Nil(t, Render(Circle, data, 10, -1))
}

func TestRenderBars_Silence(t *testing.T) {
	for _, l := range RenderBars(make([]byte, 128), 64, 8) {
		assert.Empty(t, strings.TrimSpace(l))
	}
}

func TestRenderBars_FullScaleReachesEightyPercent(t *testing.T) {
	lines := RenderBars(filled(255, 128), 64, 10)

	for row := range 2 {
		assert.Empty(t, strings.TrimSpace(lines[row]), "row %d above the bars", row)
	}
	for row := 2; row < 10; row++ {
		assert.Equal(t, strings.Repeat("█", 64), lines[row])
	}
}

func TestRenderBars_SamplesEveryOtherBin(t *testing.T) {
	data := make([]byte, 128)
	data[1] = 255 // odd bins are skipped
	data[4] = 255 // bar 2

	lines := RenderBars(data, 64, 5)
	bottom := []rune(lines[4])

	assert.Equal(t, ' ', bottom[0])
	assert.Equal(t, '█', bottom[2])
	assert.Equal(t, ' ', bottom[1])
}

func TestRenderWave_SilenceIsCentreLine(t *testing.T) {
	lines := RenderWave(make([]byte, 128), 32, 9)

	assert.Equal(t, strings.Repeat("•", 32), lines[4])
	for i, l := range lines {
		if i != 4 {
			assert.Empty(t, strings.TrimSpace(l))
		}
	}
}

func TestRenderWave_LoudBinsFallToBottom(t *testing.T) {
	lines := RenderWave(filled(255, 128), 16, 8)
	assert.Equal(t, strings.Repeat("•", 16), lines[7])
}

func TestRenderCircle_SilenceDrawsRing(t *testing.T) {
	lines := RenderCircle(make([]byte, 128), 60, 30)
	joined := strings.Join(lines, "")

	assert.Contains(t, joined, "·")
	assert.NotContains(t, joined, "∙", "no spokes without signal")
	// centre stays empty
	assert.Equal(t, ' ', []rune(lines[15])[30])
}

func TestRenderCircle_SignalDrawsSpokes(t *testing.T) {
	lines := RenderCircle(filled(255, 128), 60, 30)
	assert.Contains(t, strings.Join(lines, ""), "∙")
}
