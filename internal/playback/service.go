package playback

import (
	"context"
	"time"

	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/signal"
)

// Service defines the playback service contract. It is the single entry
// point UI collaborators use; commands never block on the audio output.
type Service interface {
	// Playback control
	Play(track playlist.Track, queue []playlist.Track)
	PlayPause()
	SkipNext()
	SkipPrevious()
	Seek(percent float64)
	SetVolume(level float64)
	SetRate(rate float64)

	// Queue manipulation
	Enqueue(track playlist.Track)
	ClearQueue()
	SetQueue(tracks []playlist.Track)
	ReorderQueue(from, to int)

	// Mode control
	ToggleShuffle()
	ToggleRepeat()

	// Equalizer
	SetEqualizerBand(index int, gain float64)
	SetEqualizerPreset(name string)
	ToggleEqualizer()

	// State queries
	Snapshot() Session
	State() State
	CurrentTrack() *playlist.Track
	IsPlaying() bool
	Progress() float64
	Elapsed() time.Duration
	Duration() time.Duration
	Volume() float64
	Rate() float64
	Queue() []playlist.Track
	QueueIndex() int
	Shuffle() bool
	Repeat() RepeatMode
	EqualizerEnabled() bool
	EqualizerGains() Gains
	Analyser() *signal.Analyser

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// Transport is the output side the service drives. *player.Transport
// implements it.
type Transport interface {
	Load(source string, tag uint64) error
	Loaded() bool
	Play(ctx context.Context) error
	Pause()
	Seek(percent float64) bool
	Restart()
	Elapsed() time.Duration
	Duration() time.Duration
	SetVolume(level float64)
	SetRate(rate float64)
	SetEqualizer(gains [signal.Bands]float64)
	Analyser() *signal.Analyser
	StartSampling()
	StopSampling()
	Events() <-chan player.Event
	Close() error
}

var _ Transport = (*player.Transport)(nil)
