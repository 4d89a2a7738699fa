// internal/state/mock.go
package state

import (
	"context"
	"slices"
	"sync"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/playlist"
)

// Mock is a test double for Manager.
type Mock struct {
	mu        sync.Mutex
	plays     []Play
	settings  *playback.Settings
	scheduled int
	recordErr error
	closed    bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Record(_ context.Context, track playlist.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.plays = append(m.plays, Play{ID: track.ID, Track: track})
	return nil
}

func (m *Mock) RecentlyPlayed(_ context.Context, limit int) ([]Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.plays)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) SaveSettings(_ context.Context, st playback.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &st
	return nil
}

func (m *Mock) LoadSettings(_ context.Context) (playback.Settings, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return playback.Settings{}, false, nil
	}
	return *m.settings, true, nil
}

func (m *Mock) ScheduleSettings(st playback.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = &st
	m.scheduled++
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetRecordError(err error) { m.mu.Lock(); m.recordErr = err; m.mu.Unlock() }

func (m *Mock) Scheduled() int { m.mu.Lock(); defer m.mu.Unlock(); return m.scheduled }

func (m *Mock) IsClosed() bool { m.mu.Lock(); defer m.mu.Unlock(); return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
