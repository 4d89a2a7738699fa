package notify

import (
	"context"
	"strings"
	"sync"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
)

// Recorder shows a notification for every track that starts. Each one
// replaces the previous so only the current track is on screen.
type Recorder struct {
	n Notifier

	mu     sync.Mutex
	lastID uint32
}

// NewRecorder creates a Recorder sending through n.
func NewRecorder(n Notifier) *Recorder {
	return &Recorder{n: n}
}

func (r *Recorder) Record(ctx context.Context, track playlist.Track) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.n.Notify(TrackNotification(track, r.lastID))
	if err != nil {
		return err
	}
	if id != 0 {
		r.lastID = id
	}
	return nil
}

// Dismiss withdraws the last track notification, if any.
func (r *Recorder) Dismiss() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastID == 0 {
		return nil
	}
	id := r.lastID
	r.lastID = 0
	return r.n.Close(id)
}

// TrackNotification builds the notification announcing track.
func TrackNotification(track playlist.Track, replaces uint32) Notification {
	title := track.Title
	if title == "" {
		title = track.ID
	}

	var parts []string
	for _, p := range []string{track.Artist, track.Album} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return Notification{
		Summary:  title,
		Body:     strings.Join(parts, " - "),
		Image:    track.CoverImage,
		Category: CategoryTrack,
		Replaces: replaces,
	}
}

var _ playback.Recorder = (*Recorder)(nil)
