//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/playback"
)

// Adapter connects the playback service to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("cadence", &rootAdapter{}, &playerAdapter{service: service}),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("MPRIS server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Cadence", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional interfaces.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	p.service.SkipNext()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.service.SkipPrevious()
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.service.IsPlaying() {
		p.service.PlayPause()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.service.PlayPause()
	return nil
}

// Stop pauses; the engine has no separate stopped-with-track state.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	if !p.service.IsPlaying() {
		p.service.PlayPause()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.seekTo(p.service.Elapsed() + time.Duration(offset)*time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.seekTo(time.Duration(position) * time.Microsecond)
	return nil
}

func (p *playerAdapter) seekTo(pos time.Duration) {
	d := p.service.Duration()
	if d <= 0 {
		return
	}
	p.service.Seek(float64(max(0, pos)) / float64(d) * 100)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return p.service.Rate(), nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	p.service.SetRate(rate)
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.service.CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.Title,
		Album:   track.Album,
	}
	if track.Artist != "" {
		meta.Artist = []string{track.Artist}
	}
	meta.ArtUrl = artURL(track.CoverImage)

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.service.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	p.service.SetVolume(level)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Elapsed().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return playback.MinRate, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return playback.MaxRate, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return len(p.service.Queue()) > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.service.CurrentTrack() != nil, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.CurrentTrack() != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.service.Duration() > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	return loopStatus(p.service.Repeat()), nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Repeat only cycles, so it is toggled until it matches.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	for range 3 {
		if loopStatus(p.service.Repeat()) == status {
			return nil
		}
		p.service.ToggleRepeat()
	}
	return fmt.Errorf("unsupported loop status %v", status)
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.service.Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	if p.service.Shuffle() != shuffle {
		p.service.ToggleShuffle()
	}
	return nil
}

func loopStatus(m playback.RepeatMode) types.LoopStatus {
	switch m {
	case playback.RepeatOne:
		return types.LoopStatusTrack
	case playback.RepeatAll:
		return types.LoopStatusPlaylist
	default:
		return types.LoopStatusNone
	}
}

func artURL(cover string) string {
	switch {
	case cover == "":
		return ""
	case strings.Contains(cover, "://"):
		return cover
	default:
		return "file://" + cover
	}
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
