package playback

import (
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a different track becomes current.
//
// Emitted by:
//   - Play, SkipNext, SkipPrevious: when the engine starts a track
//   - track end: when playback advances automatically
//
// NOT emitted by:
//   - restart (SkipPrevious after the first seconds): same track
//   - Pause/resume: state changes do not emit TrackChange
//
// Current is emitted as soon as the load is issued, before the output
// confirms the start; StateChange follows on success.
type TrackChange struct {
	Previous *playlist.Track
	Current  *playlist.Track
	Index    int
}

// ProgressChange carries a new progress sample in percent.
type ProgressChange struct {
	Progress float64
}

// QueueChange is emitted when the queue contents or order change.
type QueueChange struct {
	Tracks []playlist.Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	Repeat  RepeatMode
	Shuffle bool
}

// OutputChange is emitted when volume or playback rate changes.
type OutputChange struct {
	Volume float64
	Rate   float64
}

// EqualizerChange is emitted when any equalizer setting changes.
type EqualizerChange struct {
	Enabled bool
	Preset  string
	Gains   Gains
}

// ErrorEvent is emitted when an operation fails during playback.
type ErrorEvent struct {
	Op      errmsg.Op
	TrackID string // track id if applicable
	Title   string
	Err     error
}

// Message renders the error for display, naming the track when known.
func (e ErrorEvent) Message() string {
	return errmsg.FormatWith(e.Op, e.Title, e.Err)
}
