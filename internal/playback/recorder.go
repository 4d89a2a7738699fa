package playback

import (
	"context"

	"github.com/llehouerou/cadence/internal/playlist"
)

// Recorder is told about every successful play start. Calls run in their
// own goroutine and their errors never reach playback state.
type Recorder interface {
	Record(ctx context.Context, track playlist.Track) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, track playlist.Track) error

// Record calls f.
func (f RecorderFunc) Record(ctx context.Context, track playlist.Track) error {
	return f(ctx, track)
}
