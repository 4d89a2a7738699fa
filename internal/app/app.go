package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/ui/queuepanel"
	"github.com/llehouerou/cadence/internal/visualizer"
)

// Model is the root terminal model. All playback state lives in the
// service; the model keeps only view state.
type Model struct {
	Service    playback.Service
	Queue      queuepanel.Model
	Visualizer visualizer.Kind
	ErrorMsg   string
	Width      int
	Height     int

	sub      *playback.Subscription
	spectrum []byte
	framing  bool // a FrameCmd is in flight
}

// New creates the root model and subscribes it to the service.
func New(svc playback.Service, kind visualizer.Kind) Model {
	q := queuepanel.New()
	q.SetFocused(true)
	q.SetQueue(svc.Queue(), svc.QueueIndex())
	q.SetModes(svc.Shuffle(), svc.Repeat())
	q.SyncCursor()

	return Model{
		Service:    svc,
		Queue:      q,
		Visualizer: kind,
		sub:        svc.Subscribe(),
		framing:    svc.IsPlaying(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.framing {
		return tea.Batch(m.WatchServiceEvents(), FrameCmd())
	}
	return m.WatchServiceEvents()
}
