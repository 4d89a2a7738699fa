//go:build linux

package mpris

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

func newTestAdapter(t *testing.T) (*playerAdapter, playback.Service, *player.Mock) {
	t.Helper()
	out := player.NewMock()
	svc := playback.New(player.NewTransport(out, player.WithProcessor(out)))
	return &playerAdapter{service: svc}, svc, out
}

func track(id string) playlist.Track {
	return playlist.Track{ID: id, Title: "Title " + id, Artist: "Artist", Album: "Album",
		Duration: 4 * time.Minute, Source: "/music/" + id + ".flac", CoverImage: "/music/cover.jpg"}
}

func TestPlayerAdapter_Transport(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc, _ := newTestAdapter(t)
		defer svc.Close()

		status, _ := p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusStopped, status)
		canPlay, _ := p.CanPlay()
		assert.False(t, canPlay)

		svc.Play(track("a"), []playlist.Track{track("a"), track("b")})
		synctest.Wait()
		status, _ = p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPlaying, status)

		require.NoError(t, p.Play())
		assert.True(t, svc.IsPlaying(), "Play while playing keeps playing")

		require.NoError(t, p.Pause())
		synctest.Wait()
		status, _ = p.PlaybackStatus()
		assert.Equal(t, types.PlaybackStatusPaused, status)

		require.NoError(t, p.Play())
		synctest.Wait()
		assert.True(t, svc.IsPlaying())

		require.NoError(t, p.Next())
		synctest.Wait()
		assert.Equal(t, "b", svc.CurrentTrack().ID)
	})
}

func TestPlayerAdapter_Metadata(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc, _ := newTestAdapter(t)
		defer svc.Close()

		meta, err := p.Metadata()
		require.NoError(t, err)
		assert.Empty(t, meta.Title)

		svc.Play(track("a"), nil)
		synctest.Wait()

		meta, err = p.Metadata()
		require.NoError(t, err)
		assert.Equal(t, "Title a", meta.Title)
		assert.Equal(t, []string{"Artist"}, meta.Artist)
		assert.Equal(t, "file:///music/cover.jpg", meta.ArtUrl)
		assert.Equal(t, types.Microseconds(4*time.Minute/time.Microsecond), meta.Length)
		assert.Contains(t, string(meta.TrackId), "/org/mpris/MediaPlayer2/Track/")
	})
}

func TestPlayerAdapter_SeekAndPosition(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc, out := newTestAdapter(t)
		defer svc.Close()

		svc.Play(track("a"), nil)
		synctest.Wait()
		out.SetDuration(100 * time.Second)
		out.SetCurrentPosition(10 * time.Second)

		require.NoError(t, p.Seek(types.Microseconds(15*time.Second/time.Microsecond)))
		assert.Equal(t, []time.Duration{25 * time.Second}, out.SeekCalls())

		require.NoError(t, p.SetPosition("", types.Microseconds(50*time.Second/time.Microsecond)))
		assert.Equal(t, 50.0, svc.Progress())

		pos, _ := p.Position()
		assert.Equal(t, (50 * time.Second).Microseconds(), pos)
	})
}

func TestPlayerAdapter_Modes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p, svc, _ := newTestAdapter(t)
		defer svc.Close()

		require.NoError(t, p.SetLoopStatus(types.LoopStatusPlaylist))
		assert.Equal(t, playback.RepeatAll, svc.Repeat())
		status, _ := p.LoopStatus()
		assert.Equal(t, types.LoopStatusPlaylist, status)

		require.NoError(t, p.SetLoopStatus(types.LoopStatusNone))
		assert.Equal(t, playback.RepeatOff, svc.Repeat())

		require.NoError(t, p.SetShuffle(true))
		require.NoError(t, p.SetShuffle(true))
		assert.True(t, svc.Shuffle())

		require.NoError(t, p.SetVolume(0.3))
		v, _ := p.Volume()
		assert.Equal(t, 0.3, v)

		require.NoError(t, p.SetRate(2))
		r, _ := p.Rate()
		assert.Equal(t, 2.0, r)
	})
}

func TestArtURL(t *testing.T) {
	assert.Empty(t, artURL(""))
	assert.Equal(t, "https://x/cover.png", artURL("https://x/cover.png"))
	assert.Equal(t, "file:///a/b.jpg", artURL("/a/b.jpg"))
}

func TestFormatTrackID_Stable(t *testing.T) {
	assert.Equal(t, formatTrackID("abc"), formatTrackID("abc"))
	assert.NotEqual(t, formatTrackID("abc"), formatTrackID("abd"))
}
