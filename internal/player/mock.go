package player

import (
	"context"
	"sync"
	"time"
)

// Mock is a test double for Output and Processor.
type Mock struct {
	mu sync.Mutex

	state     State
	source    string
	tag       uint64
	position  time.Duration
	duration  time.Duration
	volume    float64
	rate      float64
	loadErr   error
	playErr   error
	hold      chan error
	loadHold  chan struct{}
	suspended bool
	resumeErr error

	loadCalls   []string
	playCalls   int
	resumeCalls int
	seekCalls   []time.Duration
	events      chan Event
}

// NewMock creates a new mock output for testing.
func NewMock() *Mock {
	return &Mock{
		state:  Stopped,
		volume: 1,
		rate:   1,
		events: make(chan Event, 16),
	}
}

// Load records the call and prepares source. After HoldLoad it first
// blocks until the release function is called.
func (m *Mock) Load(source string, tag uint64) error {
	m.mu.Lock()
	hold := m.loadHold
	m.loadHold = nil
	m.mu.Unlock()
	if hold != nil {
		<-hold
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, source)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.source = source
	m.tag = tag
	m.position = 0
	m.state = Paused
	return nil
}

// Play resolves with the scripted result. After HoldPlay it blocks until
// the release function is called or ctx is done.
func (m *Mock) Play(ctx context.Context) error {
	m.mu.Lock()
	m.playCalls++
	hold := m.hold
	m.hold = nil
	m.mu.Unlock()

	var err error
	if hold != nil {
		select {
		case err = <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = m.playErr
	}
	if err != nil {
		return err
	}
	if m.source == "" {
		return ErrNoSource
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.CanPause() {
		m.state = Paused
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) SetPosition(d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.source == "" {
		return ErrNoSource
	}
	m.seekCalls = append(m.seekCalls, d)
	m.position = d
	return nil
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = level
}

func (m *Mock) SetRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rate = rate
}

func (m *Mock) Events() <-chan Event {
	return m.events
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Stopped
	return nil
}

func (m *Mock) Suspended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suspended
}

func (m *Mock) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumeCalls++
	if m.resumeErr != nil {
		return m.resumeErr
	}
	m.suspended = false
	return nil
}

// Test helpers

func (m *Mock) SetState(s State) { m.mu.Lock(); m.state = s; m.mu.Unlock() }

func (m *Mock) SetLoadError(err error) { m.mu.Lock(); m.loadErr = err; m.mu.Unlock() }

func (m *Mock) SetPlayError(err error) { m.mu.Lock(); m.playErr = err; m.mu.Unlock() }

func (m *Mock) SetDuration(d time.Duration) { m.mu.Lock(); m.duration = d; m.mu.Unlock() }

func (m *Mock) SetCurrentPosition(d time.Duration) { m.mu.Lock(); m.position = d; m.mu.Unlock() }

func (m *Mock) SetSuspended(suspended bool) { m.mu.Lock(); m.suspended = suspended; m.mu.Unlock() }

func (m *Mock) SetResumeError(err error) { m.mu.Lock(); m.resumeErr = err; m.mu.Unlock() }

// HoldPlay makes the next Play block until release is called with its result.
func (m *Mock) HoldPlay() (release func(error)) {
	ch := make(chan error, 1)
	m.mu.Lock()
	m.hold = ch
	m.mu.Unlock()
	return func(err error) { ch <- err }
}

// HoldLoad makes the next Load block until release is called.
func (m *Mock) HoldLoad() (release func()) {
	ch := make(chan struct{})
	m.mu.Lock()
	m.loadHold = ch
	m.mu.Unlock()
	return func() { close(ch) }
}

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) ResumeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resumeCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

// Tag returns the tag of the last successful Load.
func (m *Mock) Tag() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tag
}

// SimulateEnded raises an end event for the loaded source.
func (m *Mock) SimulateEnded() {
	m.SimulateEndedTag(m.Tag())
}

// SimulateEndedTag raises an end event carrying an arbitrary tag.
func (m *Mock) SimulateEndedTag(tag uint64) {
	m.mu.Lock()
	m.state = Stopped
	m.mu.Unlock()
	m.events <- Event{Kind: EventEnded, Tag: tag}
}

// SimulateError raises an error event for the loaded source.
func (m *Mock) SimulateError(err error) {
	m.mu.Lock()
	m.state = Stopped
	tag := m.tag
	m.mu.Unlock()
	m.events <- Event{Kind: EventError, Tag: tag, Err: err}
}

// Verify Mock implements Output and Processor at compile time.
var (
	_ Output    = (*Mock)(nil)
	_ Processor = (*Mock)(nil)
)
