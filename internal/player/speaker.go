package player

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/signal"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
)

// resampleQuality is beep's interpolation quality for rate changes.
const resampleQuality = 4

// Speaker is the beep-backed Output. Its pipeline is
//
//	[decode] -> [resample: format + rate] -> [volume] -> [signal.Chain] -> [ctrl] -> speaker
//
// The device is opened lazily; until Resume succeeds the Speaker reports
// itself as suspended.
type Speaker struct {
	mu  sync.Mutex
	dev device

	sampleRate  beep.SampleRate
	chain       *signal.Chain
	initialized bool
	suspended   bool

	state     State
	file      *os.File
	streamer  beep.StreamSeekCloser
	format    beep.Format
	resampler *beep.Resampler
	volume    *effects.Volume
	ctrl      *beep.Ctrl
	queued    bool         // pipeline handed to the device
	finished  *atomic.Bool // set once the device dropped the queued pipeline
	tag       uint64       // tag of the loaded source

	level  float64
	rate   float64
	events chan Event
}

// Verify Speaker implements Output and Processor at compile time.
var (
	_ Output    = (*Speaker)(nil)
	_ Processor = (*Speaker)(nil)
)

// NewSpeaker creates a Speaker rendering at sampleRate. chain may be nil,
// in which case audio goes straight from the volume stage to the device.
func NewSpeaker(sampleRate beep.SampleRate, chain *signal.Chain) *Speaker {
	return &Speaker{
		dev:        speakerDevice{},
		sampleRate: sampleRate,
		chain:      chain,
		level:      1,
		rate:       1,
		events:     make(chan Event, 4),
	}
}

// Load decodes source and prepares it, paused, replacing any previous source.
func (s *Speaker) Load(source string, tag uint64) error {
	streamer, format, f, err := decode(source)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()

	s.file = f
	s.streamer = streamer
	s.format = format
	s.buildLocked()
	if s.chain != nil {
		s.chain.Analyser().Reset()
	}
	s.state = Paused
	s.tag = tag

	if s.initialized {
		s.queueLocked()
	}
	return nil
}

// buildLocked wraps the decoded source in a fresh, paused pipeline. A
// resampler that reached the end of its source stays drained, so a source
// replayed after its end needs a new one.
func (s *Speaker) buildLocked() {
	ratio := float64(s.format.SampleRate) / float64(s.sampleRate)
	s.resampler = beep.ResampleRatio(resampleQuality, ratio*s.rate, s.streamer)
	s.volume = &effects.Volume{
		Streamer: s.resampler,
		Base:     2,
		Volume:   levelToVolume(s.level),
		Silent:   s.level == 0,
	}

	var out beep.Streamer = s.volume
	if s.chain != nil {
		s.dev.Lock()
		s.chain.SetSource(s.volume)
		s.dev.Unlock()
		out = s.chain
	}
	s.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
}

// queueLocked hands the pipeline to the device. The end-of-source callback
// runs under the device lock, so it only flags completion and does a
// non-blocking send.
func (s *Speaker) queueLocked() {
	st, tag := s.streamer, s.tag
	finished := new(atomic.Bool)
	s.dev.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		finished.Store(true)
		ev := Event{Kind: EventEnded, Tag: tag}
		if err := st.Err(); err != nil {
			ev = Event{Kind: EventError, Tag: tag, Err: err}
		}
		select {
		case s.events <- ev:
		default:
		}
	})))
	s.queued = true
	s.finished = finished
}

// Play starts the loaded source. The device must have been resumed.
func (s *Speaker) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return ErrNoSource
	}
	if !s.initialized || s.suspended {
		return ErrBlocked
	}
	s.dev.Lock()
	drained := s.streamer.Position() >= s.streamer.Len()
	if drained {
		// a source that played to its end starts over
		_ = s.streamer.Seek(0)
	}
	s.dev.Unlock()
	if drained || (s.queued && s.finished.Load()) {
		s.dev.Clear()
		s.buildLocked()
		s.queued = false
	}
	if !s.queued {
		s.queueLocked()
	}

	s.dev.Lock()
	s.ctrl.Paused = false
	s.dev.Unlock()
	s.state = Playing
	return nil
}

// Pause pauses playback.
func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanPause() || s.ctrl == nil {
		return
	}
	s.dev.Lock()
	s.ctrl.Paused = true
	s.dev.Unlock()
	s.state = Paused
}

// State returns the current playback state.
func (s *Speaker) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Position returns the current position within the source.
func (s *Speaker) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return 0
	}
	s.dev.Lock()
	pos := s.streamer.Position()
	s.dev.Unlock()
	return s.format.SampleRate.D(pos)
}

// SetPosition seeks within the source, clamped to its bounds.
func (s *Speaker) SetPosition(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return ErrNoSource
	}
	n := s.format.SampleRate.N(d)
	n = max(0, min(n, s.streamer.Len()-1))

	s.dev.Lock()
	err := s.streamer.Seek(n)
	s.dev.Unlock()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// Duration returns the length of the loaded source.
func (s *Speaker) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

// SetVolume sets the volume level (0.0 to 1.0).
func (s *Speaker) SetVolume(level float64) {
	level = max(0, min(level, 1))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = level
	if s.volume != nil {
		s.dev.Lock()
		s.volume.Volume = levelToVolume(level)
		s.volume.Silent = level == 0
		s.dev.Unlock()
	}
}

// SetRate changes the playback speed multiplier. Pitch follows speed.
func (s *Speaker) SetRate(rate float64) {
	if rate <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rate = rate
	if s.resampler != nil {
		ratio := float64(s.format.SampleRate) / float64(s.sampleRate)
		s.dev.Lock()
		s.resampler.SetRatio(ratio * rate)
		s.dev.Unlock()
	}
}

// Events returns the channel end and error events are delivered on.
func (s *Speaker) Events() <-chan Event {
	return s.events
}

// Suspended reports whether the device is closed or suspended.
func (s *Speaker) Suspended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.initialized || s.suspended
}

// Resume opens the device on first use, or resumes it after Suspend.
func (s *Speaker) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		if err := s.dev.Init(s.sampleRate, s.sampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("%w: %w", ErrBlocked, err)
		}
		s.initialized = true
		log.Debug().Msgf("Speaker initialized with sample rate: %d Hz", s.sampleRate)
		return nil
	}
	if s.suspended {
		if err := s.dev.Resume(); err != nil {
			return fmt.Errorf("%w: %w", ErrBlocked, err)
		}
		s.suspended = false
	}
	return nil
}

// Suspend releases the device without dropping the loaded source.
func (s *Speaker) Suspend() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.suspended {
		return nil
	}
	if err := s.dev.Suspend(); err != nil {
		return err
	}
	s.suspended = true
	return nil
}

// Close stops playback and releases the device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
	if s.initialized {
		s.dev.Close()
		s.initialized = false
	}
	return nil
}

func (s *Speaker) releaseLocked() {
	if s.initialized {
		s.dev.Clear()
	}
	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	s.ctrl = nil
	s.volume = nil
	s.resampler = nil
	s.queued = false
	s.finished = nil
	s.state = Stopped
}

// device is the sink the pipeline plays through.
type device interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
	Suspend() error
	Resume() error
	Close()
}

// speakerDevice is the process-wide beep speaker.
type speakerDevice struct{}

func (speakerDevice) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (speakerDevice) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerDevice) Clear()                  { speaker.Clear() }
func (speakerDevice) Lock()                   { speaker.Lock() }
func (speakerDevice) Unlock()                 { speaker.Unlock() }
func (speakerDevice) Suspend() error          { return speaker.Suspend() }
func (speakerDevice) Resume() error           { return speaker.Resume() }
func (speakerDevice) Close()                  { speaker.Close() }

// Probe returns the length of the audio file at path.
func Probe(path string) (time.Duration, error) {
	streamer, format, f, err := decode(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, *os.File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != extMP3 && ext != extFLAC && ext != extWAV && ext != extOGG {
		return nil, beep.Format{}, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case extMP3:
		streamer, format, err = mp3.Decode(f)
	case extFLAC:
		streamer, format, err = flac.Decode(f)
	case extWAV:
		streamer, format, err = wav.Decode(f)
	case extOGG:
		streamer, format, err = vorbis.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, nil, errors.Join(ErrUnsupportedFormat, err)
	}
	return streamer, format, f, nil
}

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a logarithmic scale with base 2: 0 is unchanged, -1 is half.
// We map: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent)
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
