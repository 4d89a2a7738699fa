package playback

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/signal"
)

// RestartThreshold is how far into a track SkipPrevious restarts it
// instead of stepping back.
const RestartThreshold = 3 * time.Second

// Engine computes session transitions. Apply has no side effects; the only
// input besides its arguments is the random source used for shuffling.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates an engine. A nil rng uses the global source.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Apply returns the session after cmd and the playback intent it produces.
// s is never modified.
func (e *Engine) Apply(s Session, cmd Command) (Session, Intent) {
	next := s.Clone()

	switch c := cmd.(type) {
	case Play:
		return e.play(next, c)
	case PlayPause:
		return playPause(next)
	case SkipNext:
		return skipNext(next)
	case SkipPrevious:
		return skipPrevious(next, c.Elapsed)
	case Ended:
		return ended(next)
	case Enqueue:
		next.Queue = append(next.Queue, c.Track)
		next.OriginalQueue = append(next.OriginalQueue, c.Track)
	case ClearQueue:
		next.Queue = []playlist.Track{}
		next.OriginalQueue = []playlist.Track{}
		next.CurrentIndex = -1
	case SetQueue:
		next.Queue = playlist.Clone(c.Tracks)
		if !next.Shuffle || !playlist.SameTracks(next.Queue, next.OriginalQueue) {
			next.OriginalQueue = playlist.Clone(c.Tracks)
		}
		next.CurrentIndex = resolveIndex(s, next.Queue)
	case ReorderQueue:
		moved, ok := playlist.Move(next.Queue, c.From, c.To)
		if !ok {
			return s.Clone(), Intent{}
		}
		next.Queue = moved
		if !next.Shuffle {
			next.OriginalQueue = playlist.Clone(moved)
		}
		next.CurrentIndex = resolveIndex(s, next.Queue)
	case ToggleShuffle:
		next.Shuffle = !next.Shuffle
		if next.Shuffle {
			next.Queue = playlist.Shuffle(next.OriginalQueue, e.rng)
		} else {
			next.Queue = playlist.Clone(next.OriginalQueue)
		}
		next.CurrentIndex = resolveIndex(s, next.Queue)
	case ToggleRepeat:
		next.Repeat = next.Repeat.Next()
	case SetEqualizerBand:
		if c.Index < 0 || c.Index >= signal.Bands {
			return next, Intent{}
		}
		next.EqualizerGains[c.Index] = signal.ClampGain(c.Gain)
		next.EqualizerPreset = PresetCustom
		if !next.EqualizerEnabled {
			next.savedGains = next.EqualizerGains
		}
	case SetEqualizerPreset:
		name, gains := Preset(c.Name)
		next.EqualizerPreset = name
		next.EqualizerGains = gains
		next.EqualizerEnabled = name != PresetOff
		if next.EqualizerEnabled {
			next.savedGains = gains
		}
	case ToggleEqualizer:
		if next.EqualizerEnabled {
			next.savedGains = next.EqualizerGains
			next.EqualizerGains = Gains{}
			next.EqualizerEnabled = false
		} else {
			next.EqualizerGains = next.savedGains
			next.EqualizerEnabled = true
		}
	case SetVolume:
		if !math.IsNaN(c.Level) {
			next.Volume = max(0, min(c.Level, 1))
		}
	case SetRate:
		if c.Rate > 0 && !math.IsNaN(c.Rate) {
			next.Rate = max(MinRate, min(c.Rate, MaxRate))
		}
	}
	return next, Intent{}
}

func (e *Engine) play(s Session, c Play) (Session, Intent) {
	if len(c.Queue) > 0 {
		s.OriginalQueue = playlist.Clone(c.Queue)
		if s.Shuffle {
			s.Queue = playlist.Shuffle(c.Queue, e.rng)
		} else {
			s.Queue = playlist.Clone(c.Queue)
		}
		s.CurrentIndex = playlist.IndexOf(s.Queue, c.Track.ID)
	} else {
		s.CurrentIndex = -1
	}
	return start(s, c.Track)
}

func playPause(s Session) (Session, Intent) {
	if s.CurrentTrack == nil {
		return s, Intent{}
	}
	if s.Playing {
		s.Playing = false
		return s, Intent{Kind: IntentPause}
	}
	return s, Intent{Kind: IntentResume, Track: *s.CurrentTrack}
}

func skipNext(s Session) (Session, Intent) {
	if s.Repeat == RepeatOne {
		if s.CurrentTrack == nil {
			return s, Intent{}
		}
		return start(s, *s.CurrentTrack)
	}
	if !s.HasQueueContext() {
		return s, Intent{}
	}

	next := s.CurrentIndex + 1
	if next >= len(s.Queue) {
		if s.Repeat != RepeatAll {
			return s, Intent{}
		}
		next = 0
	}
	s.CurrentIndex = next
	return start(s, s.Queue[next])
}

func skipPrevious(s Session, elapsed time.Duration) (Session, Intent) {
	if s.CurrentTrack != nil && elapsed > RestartThreshold {
		s.Progress = 0
		return s, Intent{Kind: IntentRestart, Track: *s.CurrentTrack}
	}

	if !s.HasQueueContext() {
		prev, ok := s.History.Previous()
		if !ok {
			return s, Intent{}
		}
		s.CurrentIndex = -1
		return start(s, prev)
	}

	prev := s.CurrentIndex - 1
	if prev < 0 {
		if s.Repeat != RepeatAll {
			return s, Intent{}
		}
		prev = len(s.Queue) - 1
	}
	s.CurrentIndex = prev
	return start(s, s.Queue[prev])
}

// ended advances after a track finishes. With nothing to advance to,
// playback stops and progress resets.
func ended(s Session) (Session, Intent) {
	if len(s.Queue) > 0 {
		next, intent := skipNext(s)
		if intent.Kind != IntentNone {
			return next, intent
		}
	}
	s.Playing = false
	s.Progress = 0
	return s, Intent{}
}

// start makes t the current track. Playing stays false until the output
// confirms the start.
func start(s Session, t playlist.Track) (Session, Intent) {
	s.CurrentTrack = &t
	s.Playing = false
	s.Progress = 0
	s.History = s.History.Append(t)
	return s, Intent{Kind: IntentLoadAndPlay, Track: t}
}

// resolveIndex finds the track prev was playing within queue. A session
// outside any queue context stays outside it.
func resolveIndex(prev Session, queue []playlist.Track) int {
	if prev.CurrentIndex < 0 || prev.CurrentTrack == nil {
		return -1
	}
	return playlist.IndexOf(queue, prev.CurrentTrack.ID)
}
