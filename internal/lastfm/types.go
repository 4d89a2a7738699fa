package lastfm

import (
	"time"

	"github.com/llehouerou/cadence/internal/playlist"
)

// NowPlayingTrack contains the track metadata sent with a now playing update.
type NowPlayingTrack struct {
	Artist   string
	Track    string
	Album    string
	Duration time.Duration
}

// FromTrack maps a playlist track onto Last.fm fields. It reports false
// when the track lacks the artist or title Last.fm requires.
func FromTrack(t playlist.Track) (NowPlayingTrack, bool) {
	if t.Artist == "" || t.Title == "" {
		return NowPlayingTrack{}, false
	}
	return NowPlayingTrack{
		Artist:   t.Artist,
		Track:    t.Title,
		Album:    t.Album,
		Duration: t.Duration,
	}, true
}
