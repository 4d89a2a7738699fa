package state

import (
	"context"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	Record(ctx context.Context, track playlist.Track) error
	RecentlyPlayed(ctx context.Context, limit int) ([]Play, error)
	SaveSettings(ctx context.Context, st playback.Settings) error
	LoadSettings(ctx context.Context) (playback.Settings, bool, error)
	ScheduleSettings(st playback.Settings)
	Close() error
}

// Verify Manager implements Interface and Recorder at compile time.
var (
	_ Interface         = (*Manager)(nil)
	_ playback.Recorder = (*Manager)(nil)
)
