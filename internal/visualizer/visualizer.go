// Package visualizer draws byte frequency data as terminal text.
//
// Each Kind has its own render function. All of them take the analyser's
// bins (0..255 each) and a cell grid size, and return one string per row.
package visualizer

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects how the spectrum is drawn.
type Kind int

const (
	Bars Kind = iota
	Wave
	Circle
)

// BarCount is the number of bars drawn by Bars; bar i samples bin 2i.
const BarCount = 64

// SpokeCount is the number of radial spokes drawn by Circle.
const SpokeCount = 128

func (k Kind) String() string {
	switch k {
	case Bars:
		return "bars"
	case Wave:
		return "wave"
	case Circle:
		return "circle"
	default:
		return "unknown"
	}
}

// Next cycles bars -> wave -> circle -> bars.
func (k Kind) Next() Kind {
	switch k {
	case Bars:
		return Wave
	case Wave:
		return Circle
	default:
		return Bars
	}
}

// ParseKind parses a kind name as returned by String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bars":
		return Bars, nil
	case "wave":
		return Wave, nil
	case "circle":
		return Circle, nil
	default:
		return Bars, fmt.Errorf("invalid visualizer %q", s)
	}
}

// Render draws data with the renderer for k.
func Render(k Kind, data []byte, width, height int) []string {
	switch k {
	case Wave:
		return RenderWave(data, width, height)
	case Circle:
		return RenderCircle(data, width, height)
	default:
		return RenderBars(data, width, height)
	}
}

// eighths are partial block glyphs, one per eighth of a cell.
var eighths = []rune(" ▁▂▃▄▅▆▇█")

// RenderBars draws BarCount vertical bars spread across width. A full-scale
// bin reaches 80% of the height.
func RenderBars(data []byte, width, height int) []string {
	c := newCanvas(width, height)
	if c == nil {
		return nil
	}

	for x := range width {
		bar := x * BarCount / width
		v := bin(data, bar*2)
		// height in eighths of a cell
		h := int(math.Round(float64(v) / 255 * float64(height) * 0.8 * 8))
		for row := height - 1; row >= 0 && h > 0; row-- {
			c.set(x, row, eighths[min(h, 8)])
			h -= 8
		}
	}
	return c.lines()
}

// RenderWave draws one point per bin. Silence sits on the centre line and
// louder bins fall toward the bottom edge.
func RenderWave(data []byte, width, height int) []string {
	c := newCanvas(width, height)
	if c == nil {
		return nil
	}
	if len(data) == 0 {
		for x := range width {
			c.set(x, height/2, '─')
		}
		return c.lines()
	}

	prev := -1
	for x := range width {
		i := x * len(data) / width
		y := float64(bin(data, i))/255*float64(height)/2 + float64(height)/2
		row := min(int(y), height-1)
		c.set(x, row, '•')
		// connect to the previous point so steep slopes stay visible
		if prev >= 0 {
			lo, hi := min(prev, row), max(prev, row)
			for r := lo + 1; r < hi; r++ {
				c.set(x, r, '│')
			}
		}
		prev = row
	}
	return c.lines()
}

// RenderCircle draws SpokeCount spokes leaving a ring of radius one third
// of the smaller dimension. Cells are about twice as tall as wide, so x
// distances are doubled.
func RenderCircle(data []byte, width, height int) []string {
	c := newCanvas(width, height)
	if c == nil {
		return nil
	}

	cx, cy := float64(width)/2, float64(height)/2
	radius := min(float64(width)/2, float64(height)) / 3

	for i := range SpokeCount {
		length := float64(bin(data, i)) / 255 * radius * 0.8
		angle := float64(i) / SpokeCount * 2 * math.Pi
		cos, sin := math.Cos(angle), math.Sin(angle)

		c.set(int(cx+cos*radius*2), int(cy+sin*radius), '·')
		for d := 0.5; d <= length; d += 0.5 {
			r := radius + d
			c.set(int(cx+cos*r*2), int(cy+sin*r), '∙')
		}
	}
	return c.lines()
}

func bin(data []byte, i int) byte {
	if i < 0 || i >= len(data) {
		return 0
	}
	return data[i]
}

type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	if w <= 0 || h <= 0 {
		return nil
	}
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", w))
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

func (c *canvas) lines() []string {
	out := make([]string, c.h)
	for i, row := range c.cells {
		out[i] = string(row)
	}
	return out
}
