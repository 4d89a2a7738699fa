// Package signal implements the fixed audio processing graph placed between
// a decoded source and the output device:
//
//	source -> [10x peaking EQ] -> analysis tap -> gain -> destination
//
// The topology never changes after construction; only the per-band gains
// and the source slot do.
package signal

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep/v2"
)

// ErrUnavailable is returned when the processing graph cannot be built.
var ErrUnavailable = errors.New("audio processing unavailable")

// Bands is the number of equalizer bands.
const Bands = 10

// Gain bounds for a single band, in dB.
const (
	MinGain = -12.0
	MaxGain = 12.0
)

// Frequencies are the band centre frequencies in Hz, lowest first.
var Frequencies = [Bands]float64{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

const bandQ = 1.0

// Chain is a beep.Streamer applying the equalizer, feeding the analyser,
// and limiting the output. Stream runs on the speaker goroutine while gains
// are set from elsewhere, so gains are stored atomically.
type Chain struct {
	mu      sync.Mutex // guards src and filter state
	src     beep.Streamer
	filters [Bands]*peaking

	gains    [Bands]atomic.Uint64 // math.Float64bits of dB
	outGain  atomic.Uint64        // linear, math.Float64bits
	analyser *Analyser
	rate     beep.SampleRate
}

// New builds the chain for the given output sample rate.
func New(sampleRate beep.SampleRate) (*Chain, error) {
	if sampleRate <= 0 {
		return nil, ErrUnavailable
	}
	c := &Chain{
		analyser: NewAnalyser(),
		rate:     sampleRate,
	}
	for i, f := range Frequencies {
		c.filters[i] = newPeaking(f, bandQ, float64(sampleRate))
	}
	c.outGain.Store(math.Float64bits(1))
	return c, nil
}

// SampleRate returns the rate the filters were designed for.
func (c *Chain) SampleRate() beep.SampleRate {
	return c.rate
}

// SetSource plugs a new source into the chain and clears filter history.
// Callers on a live speaker must hold the speaker lock.
func (c *Chain) SetSource(s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.src = s
	for _, f := range c.filters {
		f.reset()
	}
}

// SetBand sets one band's gain, clamped to [MinGain, MaxGain].
// Out of range indices are ignored.
func (c *Chain) SetBand(i int, dB float64) {
	if i < 0 || i >= Bands {
		return
	}
	c.gains[i].Store(math.Float64bits(ClampGain(dB)))
}

// SetGains sets all bands at once.
func (c *Chain) SetGains(gains [Bands]float64) {
	for i, g := range gains {
		c.SetBand(i, g)
	}
}

// Band returns one band's gain in dB, or 0 for an out of range index.
func (c *Chain) Band(i int) float64 {
	if i < 0 || i >= Bands {
		return 0
	}
	return math.Float64frombits(c.gains[i].Load())
}

// Gains returns all band gains in dB.
func (c *Chain) Gains() [Bands]float64 {
	var out [Bands]float64
	for i := range out {
		out[i] = c.Band(i)
	}
	return out
}

// SetOutputGain sets the linear gain of the final stage. Negative values
// are treated as 0.
func (c *Chain) SetOutputGain(g float64) {
	c.outGain.Store(math.Float64bits(max(g, 0)))
}

// OutputGain returns the linear gain of the final stage.
func (c *Chain) OutputGain() float64 {
	return math.Float64frombits(c.outGain.Load())
}

// Analyser returns the pass-through analysis tap.
func (c *Chain) Analyser() *Analyser {
	return c.analyser
}

// Stream pulls from the source and runs every stage in order.
// With no source plugged in it produces silence and reports drained.
func (c *Chain) Stream(samples [][2]float64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.src == nil {
		return 0, false
	}

	n, ok := c.src.Stream(samples)
	buf := samples[:n]
	for i, f := range c.filters {
		f.process(buf, math.Float64frombits(c.gains[i].Load()))
	}
	c.analyser.capture(buf)

	g := c.OutputGain()
	for i := range buf {
		for ch := range 2 {
			buf[i][ch] = clamp(buf[i][ch]*g, -1, 1)
		}
	}
	return n, ok
}

// Err returns the source's error, if any.
func (c *Chain) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.src == nil {
		return nil
	}
	return c.src.Err()
}

// ClampGain bounds a band gain to [MinGain, MaxGain].
func ClampGain(dB float64) float64 {
	if math.IsNaN(dB) {
		return 0
	}
	return clamp(dB, MinGain, MaxGain)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
