// Package app contains the root terminal model hosting the playback service.
package app

import (
	"time"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
)

// FrameMsg drives visualizer redraws while audio is playing.
type FrameMsg time.Time

// ServiceStateChangedMsg is sent when the playback service state changes.
type ServiceStateChangedMsg struct {
	Previous, Current playback.State
}

// ServiceTrackChangedMsg is sent when the current track changes.
type ServiceTrackChangedMsg struct {
	Track *playlist.Track
	Index int
}

// ServiceProgressMsg carries a progress sample in percent.
type ServiceProgressMsg struct {
	Progress float64
}

// ServiceQueueChangedMsg is sent when the queue contents or order change.
type ServiceQueueChangedMsg struct {
	Tracks []playlist.Track
	Index  int
}

// ServiceSettingsChangedMsg is sent when modes, output or equalizer
// settings change. The player bar reads the new values from the service.
type ServiceSettingsChangedMsg struct{}

// ServiceErrorMsg is sent when an operation fails during playback.
type ServiceErrorMsg struct {
	Message string
}

// ServiceClosedMsg is sent when the playback service is closed.
type ServiceClosedMsg struct{}
