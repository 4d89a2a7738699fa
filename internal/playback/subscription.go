package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged     <-chan StateChange
	TrackChanged     <-chan TrackChange
	ProgressChanged  <-chan ProgressChange
	QueueChanged     <-chan QueueChange
	ModeChanged      <-chan ModeChange
	OutputChanged    <-chan OutputChange
	EqualizerChanged <-chan EqualizerChange
	Error            <-chan ErrorEvent
	Done             <-chan struct{}

	// Internal write channels
	stateCh     chan StateChange
	trackCh     chan TrackChange
	progressCh  chan ProgressChange
	queueCh     chan QueueChange
	modeCh      chan ModeChange
	outputCh    chan OutputChange
	equalizerCh chan EqualizerChange
	errorCh     chan ErrorEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:     make(chan StateChange, eventBufferSize),
		trackCh:     make(chan TrackChange, eventBufferSize),
		progressCh:  make(chan ProgressChange, eventBufferSize),
		queueCh:     make(chan QueueChange, eventBufferSize),
		modeCh:      make(chan ModeChange, eventBufferSize),
		outputCh:    make(chan OutputChange, eventBufferSize),
		equalizerCh: make(chan EqualizerChange, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.ProgressChanged = s.progressCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.OutputChanged = s.outputCh
	s.EqualizerChanged = s.equalizerCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e without blocking, dropping it if ch is full.
func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendState(e StateChange)         { send(s.stateCh, e) }
func (s *Subscription) sendTrack(e TrackChange)         { send(s.trackCh, e) }
func (s *Subscription) sendProgress(p float64)          { send(s.progressCh, ProgressChange{Progress: p}) }
func (s *Subscription) sendQueue(e QueueChange)         { send(s.queueCh, e) }
func (s *Subscription) sendMode(e ModeChange)           { send(s.modeCh, e) }
func (s *Subscription) sendOutput(e OutputChange)       { send(s.outputCh, e) }
func (s *Subscription) sendEqualizer(e EqualizerChange) { send(s.equalizerCh, e) }
func (s *Subscription) sendError(e ErrorEvent)          { send(s.errorCh, e) }
