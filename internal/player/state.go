package player

// State represents the playback state machine of an Output.
//
// The state machine has three states with the following valid transitions:
//
//	┌──────────┐      load       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Paused  │
//	└──────────┘                 └──────────┘
//	     ▲                         │      ▲
//	     │ end                play │      │ pause
//	     │                         ▼      │
//	     │                       ┌──────────┐
//	     └───────────────────────│  Playing │
//	                             └──────────┘
//
// Valid transitions:
//   - Stopped → Paused  (via Load)
//   - Paused  → Playing (via Play)
//   - Playing → Paused  (via Pause or Load)
//   - Playing → Stopped (source ended or failed)
//
// Invalid/No-op transitions (handled gracefully):
//   - Stopped → Playing (Play returns ErrNoSource)
//   - Stopped → Paused  (Pause is ignored)
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}
