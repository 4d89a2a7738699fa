package player

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(8000)

// fakeDevice mixes queued streamers only when pumped.
type fakeDevice struct {
	mu    sync.Mutex
	mixer beep.Mixer
}

func (d *fakeDevice) Init(beep.SampleRate, int) error { return nil }
func (d *fakeDevice) Play(s ...beep.Streamer) {
	d.mu.Lock()
	d.mixer.Add(s...)
	d.mu.Unlock()
}
func (d *fakeDevice) Clear()         { d.mu.Lock(); d.mixer.Clear(); d.mu.Unlock() }
func (d *fakeDevice) Lock()          { d.mu.Lock() }
func (d *fakeDevice) Unlock()        { d.mu.Unlock() }
func (d *fakeDevice) Suspend() error { return nil }
func (d *fakeDevice) Resume() error  { return nil }
func (d *fakeDevice) Close()         {}

// pump renders dur of device time.
func (d *fakeDevice) pump(dur time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf := make([][2]float64, testRate.N(dur))
	d.mixer.Stream(buf)
}

func (d *fakeDevice) queued() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mixer.Len()
}

func writeWAV(t *testing.T, length time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	format := beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, generators.Silence(testRate.N(length)), format))
	return path
}

func newTestSpeaker(t *testing.T) (*Speaker, *fakeDevice) {
	t.Helper()
	dev := &fakeDevice{}
	s := NewSpeaker(testRate, nil)
	s.dev = dev
	require.NoError(t, s.Resume())
	t.Cleanup(func() { _ = s.Close() })
	return s, dev
}

// assertPosition allows for the samples the resampler reads ahead.
func assertPosition(t *testing.T, want time.Duration, s *Speaker) {
	t.Helper()
	assert.InDelta(t, float64(want), float64(s.Position()), float64(100*time.Millisecond))
}

func nextEvent(t *testing.T, s *Speaker) Event {
	t.Helper()
	select {
	case ev := <-s.Events():
		return ev
	default:
		t.Fatal("no event pending")
		return Event{}
	}
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level float64
		want  float64
	}{
		{1, 0},
		{1.5, 0},
		{0.5, -1},
		{0.25, -2},
		{0, -10},
		{-1, -10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, levelToVolume(tt.level), 1e-9, "level %v", tt.level)
	}
	assert.InDelta(t, math.Log2(0.7), levelToVolume(0.7), 1e-9)
}

func TestDecode_UnsupportedExtension(t *testing.T) {
	_, _, _, err := decode("/music/cover.jpg")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_MissingFile(t *testing.T) {
	_, _, _, err := decode("/nonexistent/track.mp3")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestSpeaker_PlayWithoutSource(t *testing.T) {
	s := NewSpeaker(44100, nil)

	err := s.Play(t.Context())

	require.ErrorIs(t, err, ErrNoSource)
	assert.Equal(t, Stopped, s.State())
	assert.True(t, s.Suspended(), "device is not opened before Resume")
}

func TestSpeaker_IdleQueries(t *testing.T) {
	s := NewSpeaker(44100, nil)

	assert.Zero(t, s.Position())
	assert.Zero(t, s.Duration())
	require.ErrorIs(t, s.SetPosition(0), ErrNoSource)

	s.SetVolume(2)
	s.SetRate(-1)
	assert.Equal(t, 1.0, s.level)
	assert.Equal(t, 1.0, s.rate)
	require.NoError(t, s.Close())
}

func TestSpeaker_PlaysToEnd(t *testing.T) {
	s, dev := newTestSpeaker(t)
	require.NoError(t, s.Load(writeWAV(t, 2*time.Second), 7))
	assert.Equal(t, 2*time.Second, s.Duration())

	require.NoError(t, s.Play(t.Context()))
	dev.pump(time.Second)
	assertPosition(t, time.Second, s)

	dev.pump(2 * time.Second)
	assert.Equal(t, Event{Kind: EventEnded, Tag: 7}, nextEvent(t, s))
	assert.Zero(t, dev.queued())
}

func TestSpeaker_SeekAfterEndThenPlayAdvances(t *testing.T) {
	s, dev := newTestSpeaker(t)
	require.NoError(t, s.Load(writeWAV(t, 5*time.Second), 1))
	require.NoError(t, s.Play(t.Context()))
	dev.pump(6 * time.Second)
	nextEvent(t, s)

	require.NoError(t, s.SetPosition(2500*time.Millisecond))
	require.NoError(t, s.Play(t.Context()))
	dev.pump(time.Second)

	assert.Equal(t, 1, dev.queued())
	assertPosition(t, 3500*time.Millisecond, s)

	dev.pump(2 * time.Second)
	assert.Equal(t, Event{Kind: EventEnded, Tag: 1}, nextEvent(t, s))
}

func TestSpeaker_RestartAfterEndPlaysFromStart(t *testing.T) {
	s, dev := newTestSpeaker(t)
	require.NoError(t, s.Load(writeWAV(t, time.Second), 1))
	require.NoError(t, s.Play(t.Context()))
	dev.pump(2 * time.Second)
	nextEvent(t, s)

	require.NoError(t, s.SetPosition(0))
	require.NoError(t, s.Play(t.Context()))
	dev.pump(500 * time.Millisecond)

	assertPosition(t, 500*time.Millisecond, s)
}

func TestSpeaker_PauseKeepsPipelineQueued(t *testing.T) {
	s, dev := newTestSpeaker(t)
	require.NoError(t, s.Load(writeWAV(t, 2*time.Second), 1))
	require.NoError(t, s.Play(t.Context()))
	dev.pump(500 * time.Millisecond)

	s.Pause()
	paused := s.Position()
	dev.pump(time.Second)
	assert.Equal(t, paused, s.Position())
	assert.Equal(t, Paused, s.State())

	require.NoError(t, s.Play(t.Context()))
	dev.pump(500 * time.Millisecond)
	assertPosition(t, time.Second, s)
	assert.Equal(t, 1, dev.queued(), "resume does not queue a second pipeline")
}
