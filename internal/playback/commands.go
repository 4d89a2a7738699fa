package playback

import (
	"time"

	"github.com/llehouerou/cadence/internal/playlist"
)

// Command is an input to Engine.Apply.
type Command interface {
	command()
}

type (
	// Play starts track. A non-empty Queue becomes the new queue context.
	Play struct {
		Track playlist.Track
		Queue []playlist.Track
	}
	// PlayPause pauses a playing track or resumes a paused one.
	PlayPause struct{}
	// SkipNext advances through the queue.
	SkipNext struct{}
	// SkipPrevious restarts or steps back. Elapsed is the position within
	// the current track when the command was issued.
	SkipPrevious struct {
		Elapsed time.Duration
	}
	// Ended is raised when the current track played to its end.
	Ended struct{}
	// Enqueue appends a track to the queue.
	Enqueue struct {
		Track playlist.Track
	}
	// ClearQueue empties the queue.
	ClearQueue struct{}
	// SetQueue replaces the active queue.
	SetQueue struct {
		Tracks []playlist.Track
	}
	// ReorderQueue moves the track at From to To.
	ReorderQueue struct {
		From, To int
	}
	// ToggleShuffle flips shuffle.
	ToggleShuffle struct{}
	// ToggleRepeat cycles the repeat mode.
	ToggleRepeat struct{}
	// SetEqualizerBand sets one band's gain in dB.
	SetEqualizerBand struct {
		Index int
		Gain  float64
	}
	// SetEqualizerPreset applies a named preset.
	SetEqualizerPreset struct {
		Name string
	}
	// ToggleEqualizer switches the equalizer off or back on.
	ToggleEqualizer struct{}
	// SetVolume sets the output level in [0,1].
	SetVolume struct {
		Level float64
	}
	// SetRate sets the playback speed multiplier.
	SetRate struct {
		Rate float64
	}
)

func (Play) command()               {}
func (PlayPause) command()          {}
func (SkipNext) command()           {}
func (SkipPrevious) command()       {}
func (Ended) command()              {}
func (Enqueue) command()            {}
func (ClearQueue) command()         {}
func (SetQueue) command()           {}
func (ReorderQueue) command()       {}
func (ToggleShuffle) command()      {}
func (ToggleRepeat) command()       {}
func (SetEqualizerBand) command()   {}
func (SetEqualizerPreset) command() {}
func (ToggleEqualizer) command()    {}
func (SetVolume) command()          {}
func (SetRate) command()            {}

// IntentKind says what the output should do after a command.
type IntentKind int

const (
	IntentNone IntentKind = iota
	// IntentLoadAndPlay loads Intent.Track and starts it.
	IntentLoadAndPlay
	// IntentRestart moves the current track back to its start.
	IntentRestart
	// IntentPause pauses the output.
	IntentPause
	// IntentResume resumes the loaded track.
	IntentResume
)

func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "none"
	case IntentLoadAndPlay:
		return "load-and-play"
	case IntentRestart:
		return "restart"
	case IntentPause:
		return "pause"
	case IntentResume:
		return "resume"
	default:
		return "unknown"
	}
}

// Intent is the playback side effect a command asks for.
type Intent struct {
	Kind  IntentKind
	Track playlist.Track
}
