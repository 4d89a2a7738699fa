package signal

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Analyser parameters.
const (
	FFTSize   = 256
	BinCount  = FFTSize / 2
	Smoothing = 0.8
	MinDB     = -100.0
	MaxDB     = -30.0
)

// Analyser is a pass-through tap that keeps the most recent mono samples
// in a ring buffer and turns them into a byte frequency spectrum on demand.
type Analyser struct {
	mu       sync.Mutex
	buf      [FFTSize]float64
	pos      int
	smoothed [BinCount]float64
	window   []float64
}

// NewAnalyser creates an analyser with an empty buffer.
func NewAnalyser() *Analyser {
	return &Analyser{window: window.Blackman(FFTSize)}
}

// capture copies a mono mix of samples into the ring buffer.
func (a *Analyser) capture(samples [][2]float64) {
	a.mu.Lock()
	for i := range samples {
		a.buf[a.pos] = (samples[i][0] + samples[i][1]) / 2
		a.pos = (a.pos + 1) % FFTSize
	}
	a.mu.Unlock()
}

// Samples returns the buffered samples in chronological order.
func (a *Analyser) Samples() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.samplesLocked()
}

func (a *Analyser) samplesLocked() []float64 {
	out := make([]float64, FFTSize)
	for i := range out {
		out[i] = a.buf[(a.pos+i)%FFTSize]
	}
	return out
}

// ByteFrequencyData returns BinCount magnitudes scaled so that MinDB maps
// to 0 and MaxDB maps to 255. Successive calls are smoothed over time.
func (a *Analyser) ByteFrequencyData() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()

	frame := a.samplesLocked()
	for i := range frame {
		frame[i] *= a.window[i]
	}
	coeffs := fft.FFTReal(frame)

	out := make([]byte, BinCount)
	for k := range BinCount {
		mag := cmplx.Abs(coeffs[k]) / FFTSize
		a.smoothed[k] = Smoothing*a.smoothed[k] + (1-Smoothing)*mag
		out[k] = toByte(a.smoothed[k])
	}
	return out
}

// Reset clears buffered samples and smoothing history.
func (a *Analyser) Reset() {
	a.mu.Lock()
	a.buf = [FFTSize]float64{}
	a.pos = 0
	a.smoothed = [BinCount]float64{}
	a.mu.Unlock()
}

func toByte(mag float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	scaled := 255 * (db - MinDB) / (MaxDB - MinDB)
	return byte(clamp(math.Floor(scaled), 0, 255))
}
