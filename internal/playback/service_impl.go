// internal/playback/service_impl.go
package playback

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
	"github.com/llehouerou/cadence/internal/signal"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

// serviceImpl serializes every command under mu. Loads run in a goroutine
// outside mu, one at a time, and only the newest load tag may apply its
// result. The output's start is awaited the same way under a play token.
// Output events carry the tag of the load that produced them and are
// dropped once that load is replaced.
type serviceImpl struct {
	mu    sync.Mutex
	loads chan struct{} // one slot, held while the output decodes

	engine    *Engine
	session   Session
	transport Transport
	recorders []Recorder

	loadGen   uint64 // tag of the current source
	playGen   uint64 // token of the newest start or resume
	cancel    context.CancelFunc
	loading   bool // a load for loadGen is in flight
	unstarted bool // the loaded source has not started playing yet

	subs   []*Subscription
	subsMu sync.RWMutex

	ctx    context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// Option configures the service.
type Option func(*serviceImpl)

// WithSession starts the service from s instead of a fresh session.
func WithSession(s Session) Option {
	return func(svc *serviceImpl) { svc.session = s.Clone() }
}

// WithRand sets the random source used for shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(svc *serviceImpl) { svc.engine = NewEngine(rng) }
}

// WithRecorders registers recorders told about each play start.
func WithRecorders(r ...Recorder) Option {
	return func(svc *serviceImpl) { svc.recorders = append(svc.recorders, r...) }
}

// New creates a playback service over t and pushes the session's output
// settings to it.
func New(t Transport, opts ...Option) Service {
	ctx, stop := context.WithCancel(context.Background())
	s := &serviceImpl{
		engine:    NewEngine(nil),
		session:   NewSession(),
		transport: t,
		loads:     make(chan struct{}, 1),
		ctx:       ctx,
		stop:      stop,
	}
	for _, opt := range opts {
		opt(s)
	}

	t.SetVolume(s.session.Volume)
	t.SetRate(s.session.Rate)
	t.SetEqualizer(s.session.EqualizerGains)

	s.wg.Add(1)
	go s.watch()
	return s
}

// Commands

func (s *serviceImpl) Play(track playlist.Track, queue []playlist.Track) {
	s.dispatch(Play{Track: track, Queue: queue})
}

func (s *serviceImpl) PlayPause() { s.dispatch(PlayPause{}) }

func (s *serviceImpl) SkipNext() { s.dispatch(SkipNext{}) }

func (s *serviceImpl) SkipPrevious() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	var elapsed time.Duration
	if !s.loading {
		elapsed = s.transport.Elapsed()
	}
	s.applyLocked(SkipPrevious{Elapsed: elapsed})
}

// Seek moves to percent of the current track. Without a current track, or
// before the duration is known, it does nothing.
func (s *serviceImpl) Seek(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.loading || s.session.CurrentTrack == nil {
		return
	}
	percent = max(0, min(percent, 100))
	if !s.transport.Seek(percent) {
		return
	}
	s.session.Progress = percent
	s.broadcast(func(sub *Subscription) { sub.sendProgress(percent) })
}

func (s *serviceImpl) SetVolume(level float64) { s.dispatch(SetVolume{Level: level}) }

func (s *serviceImpl) SetRate(rate float64) { s.dispatch(SetRate{Rate: rate}) }

func (s *serviceImpl) Enqueue(track playlist.Track) { s.dispatch(Enqueue{Track: track}) }

func (s *serviceImpl) ClearQueue() { s.dispatch(ClearQueue{}) }

func (s *serviceImpl) SetQueue(tracks []playlist.Track) { s.dispatch(SetQueue{Tracks: tracks}) }

func (s *serviceImpl) ReorderQueue(from, to int) { s.dispatch(ReorderQueue{From: from, To: to}) }

func (s *serviceImpl) ToggleShuffle() { s.dispatch(ToggleShuffle{}) }

func (s *serviceImpl) ToggleRepeat() { s.dispatch(ToggleRepeat{}) }

func (s *serviceImpl) SetEqualizerBand(index int, gain float64) {
	s.dispatch(SetEqualizerBand{Index: index, Gain: gain})
}

func (s *serviceImpl) SetEqualizerPreset(name string) { s.dispatch(SetEqualizerPreset{Name: name}) }

func (s *serviceImpl) ToggleEqualizer() { s.dispatch(ToggleEqualizer{}) }

func (s *serviceImpl) dispatch(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.applyLocked(cmd)
}

// applyLocked runs cmd through the engine, then the transport, then
// notifies subscribers.
func (s *serviceImpl) applyLocked(cmd Command) {
	prev := s.session
	next, intent := s.engine.Apply(prev, cmd)
	s.session = next
	s.syncOutputLocked(prev, next)
	s.executeLocked(intent)
	s.publishLocked(prev, intent)
}

func (s *serviceImpl) syncOutputLocked(prev, next Session) {
	if prev.Volume != next.Volume {
		s.transport.SetVolume(next.Volume)
	}
	if prev.Rate != next.Rate {
		s.transport.SetRate(next.Rate)
	}
	if prev.EqualizerGains != next.EqualizerGains {
		s.transport.SetEqualizer(next.EqualizerGains)
	}
}

func (s *serviceImpl) executeLocked(intent Intent) {
	switch intent.Kind {
	case IntentNone:
	case IntentLoadAndPlay:
		s.loadLocked(intent.Track)
	case IntentRestart:
		if !s.loading {
			s.transport.Restart()
		}
	case IntentPause:
		s.supersedeLocked()
		s.transport.Pause()
	case IntentResume:
		if s.loading {
			// the pending load starts the track once decoded
			return
		}
		if !s.transport.Loaded() {
			s.loadLocked(intent.Track)
			return
		}
		op := errmsg.OpPlaybackResume
		if s.unstarted {
			op = errmsg.OpPlaybackStart
		}
		s.launchLocked(intent.Track, op)
	}
}

// loadLocked replaces the source with track and starts it. Decoding runs
// in a goroutine so commands and queries never wait on it.
func (s *serviceImpl) loadLocked(track playlist.Track) {
	s.supersedeLocked()
	s.transport.StopSampling()
	s.loadGen++
	s.loading = true

	s.wg.Add(1)
	go s.load(s.loadGen, track)
}

func (s *serviceImpl) load(gen uint64, track playlist.Track) {
	defer s.wg.Done()

	s.loads <- struct{}{}
	defer func() { <-s.loads }()

	if !s.currentLoad(gen) {
		log.Debug().Str("track", track.ID).Uint64("gen", gen).Msg("Superseded load skipped")
		return
	}
	err := s.transport.Load(track.Source, gen)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.loadGen {
		log.Debug().Str("track", track.ID).Uint64("gen", gen).Msg("Superseded load discarded")
		return
	}
	s.loading = false
	if err != nil {
		log.Warn().Err(err).Str("track", track.ID).Msg("Load failed")
		s.unstarted = false
		s.session.Playing = false
		s.transport.StopSampling()
		s.publishError(errmsg.OpPlaybackLoad, &track, err)
		return
	}
	log.Debug().Str("track", track.ID).Uint64("gen", gen).Msg("Track loaded")
	s.unstarted = true
	s.launchLocked(track, errmsg.OpPlaybackStart)
}

func (s *serviceImpl) currentLoad(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && gen == s.loadGen
}

// launchLocked asks the output to start and awaits the answer in a
// goroutine holding a fresh play token.
func (s *serviceImpl) launchLocked(track playlist.Track, op errmsg.Op) {
	s.supersedeLocked()
	token := s.playGen

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.awaitStart(ctx, token, track, op)
}

// supersedeLocked invalidates any start still waiting on the output.
func (s *serviceImpl) supersedeLocked() {
	s.playGen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *serviceImpl) awaitStart(ctx context.Context, token uint64, track playlist.Track, op errmsg.Op) {
	defer s.wg.Done()

	err := s.transport.Play(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || token != s.playGen {
		log.Debug().Str("track", track.ID).Uint64("token", token).Msg("Superseded start discarded")
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	prev := s.session
	if err != nil {
		if errors.Is(err, player.ErrBlocked) {
			log.Warn().Err(err).Str("track", track.ID).Msg("Playback blocked")
		} else {
			log.Warn().Err(err).Str("track", track.ID).Msg("Playback failed to start")
		}
		s.session.Playing = false
		s.publishLocked(prev, Intent{})
		s.publishError(op, &track, err)
		return
	}

	s.session.Playing = true
	s.transport.StartSampling()
	s.publishLocked(prev, Intent{})
	log.Debug().Str("track", track.ID).Msg("Playback started")

	// a resume that lands before the first start still counts as a play
	if s.unstarted {
		s.unstarted = false
		s.recordLocked(track)
	}
}

func (s *serviceImpl) recordLocked(track playlist.Track) {
	for _, r := range s.recorders {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := r.Record(s.ctx, track); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Str("track", track.ID).Msg("Recorder failed")
			}
		}()
	}
}

// watch consumes transport events until the service closes.
func (s *serviceImpl) watch() {
	defer s.wg.Done()

	events := s.transport.Events()
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-events:
			s.handleEvent(ev)
		}
	}
}

func (s *serviceImpl) handleEvent(ev player.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if ev.Tag != s.loadGen {
		log.Debug().Stringer("kind", ev.Kind).Uint64("tag", ev.Tag).Msg("Stale output event dropped")
		return
	}

	switch ev.Kind {
	case player.EventProgress:
		if !s.session.Playing {
			return
		}
		s.session.Progress = ev.Progress
		s.broadcast(func(sub *Subscription) { sub.sendProgress(ev.Progress) })
	case player.EventEnded:
		s.supersedeLocked()
		s.applyLocked(Ended{})
	case player.EventError:
		s.supersedeLocked()
		s.transport.StopSampling()
		prev := s.session
		s.session.Playing = false
		log.Warn().Err(ev.Err).Str("track", s.session.CurrentID()).Msg("Playback error")
		s.publishLocked(prev, Intent{})
		s.publishError(errmsg.OpPlaybackLoad, s.session.CurrentTrack, ev.Err)
	}
}

// publishLocked notifies subscribers of everything that differs between
// prev and the current session.
func (s *serviceImpl) publishLocked(prev Session, intent Intent) {
	next := s.session

	if ps, ns := prev.State(), next.State(); ps != ns {
		s.broadcast(func(sub *Subscription) { sub.sendState(StateChange{Previous: ps, Current: ns}) })
	}
	if intent.Kind == IntentLoadAndPlay {
		e := TrackChange{Previous: prev.CurrentTrack, Current: next.CurrentTrack, Index: next.CurrentIndex}
		s.broadcast(func(sub *Subscription) { sub.sendTrack(e) })
	}
	if prev.CurrentIndex != next.CurrentIndex ||
		!slices.Equal(playlist.IDs(prev.Queue), playlist.IDs(next.Queue)) {
		e := QueueChange{Tracks: next.Queue, Index: next.CurrentIndex}
		s.broadcast(func(sub *Subscription) {
			sub.sendQueue(QueueChange{Tracks: playlist.Clone(e.Tracks), Index: e.Index})
		})
	}
	if prev.Shuffle != next.Shuffle || prev.Repeat != next.Repeat {
		e := ModeChange{Repeat: next.Repeat, Shuffle: next.Shuffle}
		s.broadcast(func(sub *Subscription) { sub.sendMode(e) })
	}
	if prev.Volume != next.Volume || prev.Rate != next.Rate {
		e := OutputChange{Volume: next.Volume, Rate: next.Rate}
		s.broadcast(func(sub *Subscription) { sub.sendOutput(e) })
	}
	if prev.EqualizerEnabled != next.EqualizerEnabled ||
		prev.EqualizerPreset != next.EqualizerPreset ||
		prev.EqualizerGains != next.EqualizerGains {
		e := EqualizerChange{Enabled: next.EqualizerEnabled, Preset: next.EqualizerPreset, Gains: next.EqualizerGains}
		s.broadcast(func(sub *Subscription) { sub.sendEqualizer(e) })
	}
	if prev.Progress != next.Progress {
		s.broadcast(func(sub *Subscription) { sub.sendProgress(next.Progress) })
	}
}

func (s *serviceImpl) publishError(op errmsg.Op, track *playlist.Track, err error) {
	e := ErrorEvent{Op: op, Err: err}
	if track != nil {
		e.TrackID, e.Title = track.ID, track.Title
	}
	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
}

func (s *serviceImpl) broadcast(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

// Queries

// Snapshot returns a deep copy of the session.
func (s *serviceImpl) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

func (s *serviceImpl) State() State { return s.Snapshot().State() }

// CurrentTrack returns a copy of the current track, or nil if none.
func (s *serviceImpl) CurrentTrack() *playlist.Track { return s.Snapshot().CurrentTrack }

func (s *serviceImpl) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Playing
}

func (s *serviceImpl) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Progress
}

// Elapsed returns the position within the current track.
func (s *serviceImpl) Elapsed() time.Duration { return s.transport.Elapsed() }

// Duration returns the current track length, or 0 when unknown.
func (s *serviceImpl) Duration() time.Duration { return s.transport.Duration() }

func (s *serviceImpl) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Volume
}

func (s *serviceImpl) Rate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Rate
}

// Queue returns a copy of the active queue.
func (s *serviceImpl) Queue() []playlist.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return playlist.Clone(s.session.Queue)
}

// QueueIndex returns the current queue index (-1 if none).
func (s *serviceImpl) QueueIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.CurrentIndex
}

func (s *serviceImpl) Shuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Shuffle
}

func (s *serviceImpl) Repeat() RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Repeat
}

func (s *serviceImpl) EqualizerEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.EqualizerEnabled
}

func (s *serviceImpl) EqualizerGains() Gains {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.EqualizerGains
}

// Analyser returns the analysis tap, or nil when audio processing is
// unavailable.
func (s *serviceImpl) Analyser() *signal.Analyser { return s.transport.Analyser() }

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops pending work, closes the transport and ends subscriptions.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.stop()
	s.mu.Unlock()

	s.wg.Wait()
	err := s.transport.Close()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return err
}
