package player

import "testing"

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state    State
		name     string
		canPause bool
	}{
		{Stopped, "Stopped", false},
		{Playing, "Playing", true},
		{Paused, "Paused", false},
		{State(99), "Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.state.CanPause(); got != tt.canPause {
				t.Errorf("CanPause() = %v, want %v", got, tt.canPause)
			}
		})
	}
}

func TestEventKind_String(t *testing.T) {
	tests := map[EventKind]string{
		EventEnded:    "ended",
		EventError:    "error",
		EventProgress: "progress",
		EventKind(42): "unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}
