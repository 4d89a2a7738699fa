package signal

import "math"

// peaking is a second-order IIR peaking equalizer per the Audio EQ Cookbook.
// Coefficients are recomputed only when the gain changes.
type peaking struct {
	freq float64
	q    float64
	sr   float64

	// per-channel filter state
	x1, x2 [2]float64
	y1, y2 [2]float64

	lastGain           float64
	b0, b1, b2, a1, a2 float64
	inited             bool
}

func newPeaking(freq, q, sr float64) *peaking {
	return &peaking{freq: freq, q: q, sr: sr}
}

func (p *peaking) calcCoeffs(dB float64) {
	if p.inited && dB == p.lastGain {
		return
	}
	p.lastGain = dB
	p.inited = true

	a := math.Pow(10, dB/40)
	w0 := 2 * math.Pi * p.freq / p.sr
	sinW0 := math.Sin(w0)
	cosW0 := math.Cos(w0)
	alpha := sinW0 / (2 * p.q)

	a0 := 1 + alpha/a
	p.b0 = (1 + alpha*a) / a0
	p.b1 = (-2 * cosW0) / a0
	p.b2 = (1 - alpha*a) / a0
	p.a1 = (-2 * cosW0) / a0
	p.a2 = (1 - alpha/a) / a0
}

// process filters samples in place. A gain within ±0.1 dB is a pass-through.
func (p *peaking) process(samples [][2]float64, dB float64) {
	if dB > -0.1 && dB < 0.1 {
		return
	}
	p.calcCoeffs(dB)

	for i := range samples {
		for ch := range 2 {
			x := samples[i][ch]
			y := p.b0*x + p.b1*p.x1[ch] + p.b2*p.x2[ch] - p.a1*p.y1[ch] - p.a2*p.y2[ch]
			p.x2[ch] = p.x1[ch]
			p.x1[ch] = x
			p.y2[ch] = p.y1[ch]
			p.y1[ch] = y
			samples[i][ch] = y
		}
	}
}

// reset clears the filter history so a new source starts without a tail.
func (p *peaking) reset() {
	p.x1, p.x2 = [2]float64{}, [2]float64{}
	p.y1, p.y2 = [2]float64{}, [2]float64{}
}
