package playback

import (
	"github.com/llehouerou/cadence/internal/playlist"
)

// Session defaults.
const (
	DefaultVolume = 0.7
	DefaultRate   = 1.0
	MinRate       = 0.25
	MaxRate       = 4.0
)

// Session is the in-memory record of everything the player knows.
// It is a plain value: the service owns the only writable copy and hands
// readers deep copies from Clone.
type Session struct {
	CurrentTrack *playlist.Track
	Playing      bool
	Progress     float64 // percent, sampled while playing

	// Queue is the active play order; OriginalQueue is the unshuffled order.
	Queue         []playlist.Track
	OriginalQueue []playlist.Track
	// CurrentIndex points into Queue, or is -1 outside any queue context.
	CurrentIndex int
	History      playlist.History

	Shuffle bool
	Repeat  RepeatMode

	Volume float64
	Rate   float64

	EqualizerEnabled bool
	EqualizerPreset  string
	EqualizerGains   Gains

	// gains to restore when the equalizer is switched back on
	savedGains Gains
}

// NewSession returns a session with no track, an empty queue and defaults.
func NewSession() Session {
	return Session{
		Queue:           []playlist.Track{},
		OriginalQueue:   []playlist.Track{},
		CurrentIndex:    -1,
		History:         playlist.NewHistory(),
		Volume:          DefaultVolume,
		Rate:            DefaultRate,
		EqualizerPreset: PresetOff,
	}
}

// Clone returns a deep copy sharing no mutable storage with s.
func (s Session) Clone() Session {
	c := s
	if s.CurrentTrack != nil {
		t := *s.CurrentTrack
		c.CurrentTrack = &t
	}
	c.Queue = playlist.Clone(s.Queue)
	c.OriginalQueue = playlist.Clone(s.OriginalQueue)
	return c
}

// State derives the subscriber-facing playback state.
func (s Session) State() State {
	switch {
	case s.CurrentTrack == nil:
		return StateStopped
	case s.Playing:
		return StatePlaying
	default:
		return StatePaused
	}
}

// HasQueueContext reports whether playback follows the queue.
func (s Session) HasQueueContext() bool {
	return len(s.Queue) > 0 && s.CurrentIndex >= 0
}

// CurrentID returns the current track's id, or "" when there is none.
func (s Session) CurrentID() string {
	if s.CurrentTrack == nil {
		return ""
	}
	return s.CurrentTrack.ID
}
