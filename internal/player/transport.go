package player

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/signal"
)

// DefaultSampleInterval is one rendering frame at 60 Hz.
const DefaultSampleInterval = 16 * time.Millisecond

const transportBufferSize = 16

// Transport drives an Output: it loads and starts sources, forwards the
// equalizer to the signal chain, and samples progress while playing.
//
// Progress sampling is a goroutine bound to a generation counter. Every
// call that should stop sampling bumps the counter; a loop that sees a
// newer generation exits without sampling again.
type Transport struct {
	out      Output
	proc     Processor
	chain    *signal.Chain
	interval time.Duration

	mu     sync.Mutex
	tag    uint64
	loaded bool

	samplerGen atomic.Uint64

	events chan Event
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// Option configures a Transport.
type Option func(*Transport)

// WithChain routes equalizer changes to c. Without it the equalizer is inert.
func WithChain(c *signal.Chain) Option {
	return func(t *Transport) { t.chain = c }
}

// WithProcessor makes Play resume p before starting the output.
func WithProcessor(p Processor) Option {
	return func(t *Transport) { t.proc = p }
}

// WithSampleInterval sets how often progress is sampled.
func WithSampleInterval(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.interval = d
		}
	}
}

// NewTransport creates a Transport over out and starts watching its events.
func NewTransport(out Output, opts ...Option) *Transport {
	t := &Transport{
		out:      out,
		interval: DefaultSampleInterval,
		events:   make(chan Event, transportBufferSize),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.wg.Add(1)
	go t.watch()
	return t
}

// Load replaces the source. Any running sampler stops first. The output
// decodes without the transport lock held; callers serialize loads.
func (t *Transport) Load(source string, tag uint64) error {
	t.StopSampling()

	err := t.out.Load(source, tag)

	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.loaded = false
		return fmt.Errorf("load %s: %w", source, err)
	}
	t.tag = tag
	t.loaded = true
	return nil
}

// Loaded reports whether a source is ready to play.
func (t *Transport) Loaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loaded
}

// Play starts the loaded source, resuming a suspended processor first.
// A processor that refuses to resume yields ErrBlocked.
func (t *Transport) Play(ctx context.Context) error {
	if t.proc != nil && t.proc.Suspended() {
		if err := t.proc.Resume(); err != nil {
			return fmt.Errorf("%w: resume: %w", ErrBlocked, err)
		}
	}
	return t.out.Play(ctx)
}

// Pause stops the output and the sampler.
func (t *Transport) Pause() {
	t.StopSampling()
	t.out.Pause()
}

// Seek moves to percent (0..100) of the source. It reports false when the
// duration is not known yet.
func (t *Transport) Seek(percent float64) bool {
	d := t.out.Duration()
	if d <= 0 {
		return false
	}
	percent = max(0, min(percent, 100))
	pos := time.Duration(percent / 100 * float64(d))
	if err := t.out.SetPosition(pos); err != nil {
		log.Warn().Err(err).Msg("Seek failed")
		return false
	}
	return true
}

// Restart moves back to the start of the source.
func (t *Transport) Restart() {
	if err := t.out.SetPosition(0); err != nil {
		log.Warn().Err(err).Msg("Restart failed")
	}
}

// Elapsed returns the position within the current source.
func (t *Transport) Elapsed() time.Duration {
	return t.out.Position()
}

// Duration returns the current source length, or 0 when unknown.
func (t *Transport) Duration() time.Duration {
	return t.out.Duration()
}

func (t *Transport) SetVolume(level float64) { t.out.SetVolume(level) }

func (t *Transport) SetRate(rate float64) { t.out.SetRate(rate) }

// SetEqualizer applies band gains to the signal chain, if there is one.
func (t *Transport) SetEqualizer(gains [signal.Bands]float64) {
	if t.chain == nil {
		return
	}
	t.chain.SetGains(gains)
}

// Analyser returns the analysis tap, or nil when processing is unavailable.
func (t *Transport) Analyser() *signal.Analyser {
	if t.chain == nil {
		return nil
	}
	return t.chain.Analyser()
}

// Events returns end, error and progress events. End and error events
// are never dropped; progress samples are dropped when the reader lags.
func (t *Transport) Events() <-chan Event {
	return t.events
}

// StartSampling starts a progress sampler for the loaded source,
// superseding any running one.
func (t *Transport) StartSampling() {
	gen := t.samplerGen.Add(1)

	t.mu.Lock()
	tag := t.tag
	t.mu.Unlock()

	t.wg.Add(1)
	go t.sample(gen, tag)
}

// StopSampling stops the running sampler, if any.
func (t *Transport) StopSampling() {
	t.samplerGen.Add(1)
}

func (t *Transport) sample(gen, tag uint64) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
		}
		if t.samplerGen.Load() != gen {
			return
		}
		d := t.out.Duration()
		if d <= 0 {
			continue
		}
		pct := float64(t.out.Position()) / float64(d) * 100
		select {
		case t.events <- Event{Kind: EventProgress, Tag: tag, Progress: min(pct, 100)}:
		default:
		}
	}
}

func (t *Transport) watch() {
	defer t.wg.Done()

	src := t.out.Events()
	for {
		var ev Event
		select {
		case <-t.done:
			return
		case ev = <-src:
		}

		t.mu.Lock()
		current := ev.Tag == t.tag
		t.mu.Unlock()
		if current {
			t.StopSampling()
		}

		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Close stops the sampler and the watcher, then closes the output.
func (t *Transport) Close() error {
	var err error
	t.once.Do(func() {
		t.StopSampling()
		close(t.done)
		t.wg.Wait()
		err = t.out.Close()
	})
	return err
}
