package lastfm

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
)

type nowPlayer interface {
	UpdateNowPlaying(track NowPlayingTrack) error
}

// Recorder sends a now playing update for every track that starts.
type Recorder struct {
	api nowPlayer
}

// NewRecorder creates a Recorder posting through c.
func NewRecorder(c *Client) *Recorder {
	return &Recorder{api: c}
}

// Record announces track. Tracks without artist or title are skipped.
// The API call itself cannot be canceled; Record returns early when ctx
// ends and the call finishes in the background.
func (r *Recorder) Record(ctx context.Context, track playlist.Track) error {
	np, ok := FromTrack(track)
	if !ok {
		log.Debug().Str("track", track.ID).Msg("Now playing skipped: missing artist or title")
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- r.api.UpdateNowPlaying(np) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ playback.Recorder = (*Recorder)(nil)
