package player

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrBlocked is returned when the platform refuses to start audio.
	ErrBlocked = errors.New("playback blocked")
	// ErrNoSource is returned by Play when nothing has been loaded.
	ErrNoSource = errors.New("no source loaded")
	// ErrUnsupportedFormat is returned by Load for sources it cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	// EventEnded is raised when the loaded source plays to its end.
	EventEnded EventKind = iota
	// EventError is raised when the loaded source fails while playing.
	EventError
	// EventProgress carries a progress sample. Only Transport raises it.
	EventProgress
)

func (k EventKind) String() string {
	switch k {
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	case EventProgress:
		return "progress"
	default:
		return "unknown"
	}
}

// Event is delivered asynchronously on an Events channel.
// Tag is the value passed to the Load that produced the source, so a
// receiver can drop events from sources it has since replaced.
type Event struct {
	Kind     EventKind
	Tag      uint64
	Progress float64 // percent, EventProgress only
	Err      error   // EventError only
}

// Output is the decode and output primitive Transport drives.
//
// Events are delivered on a channel, never by calling back into the
// caller, so implementations may raise them while holding internal locks.
type Output interface {
	// Load replaces the current source. Playback of a previous source
	// stops immediately and the new source starts paused.
	Load(source string, tag uint64) error
	// Play starts or resumes the loaded source. It may block until the
	// output accepts the request or ctx is done.
	Play(ctx context.Context) error
	Pause()
	State() State
	Position() time.Duration
	SetPosition(d time.Duration) error
	// Duration returns the source length, or 0 when unknown.
	Duration() time.Duration
	SetVolume(level float64)
	SetRate(rate float64)
	Events() <-chan Event
	Close() error
}

// Processor is the optional audio processing context in front of the
// output device. While suspended, processed audio is silently dropped.
type Processor interface {
	Suspended() bool
	Resume() error
}
