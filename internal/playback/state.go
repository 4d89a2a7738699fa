// internal/playback/state.go
package playback

import (
	"fmt"
	"strings"
)

// State represents the playback state seen by subscribers.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// RepeatMode defines the repeat behavior.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
	RepeatAll
)

// String returns the repeat mode name as used in configuration.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatOne:
		return "one"
	case RepeatAll:
		return "all"
	default:
		return "unknown"
	}
}

// Next returns the following mode in the cycle off -> one -> all -> off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatOne
	case RepeatOne:
		return RepeatAll
	default:
		return RepeatOff
	}
}

// ParseRepeatMode parses "off", "one" or "all" (case-insensitive).
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off":
		return RepeatOff, nil
	case "one":
		return RepeatOne, nil
	case "all":
		return RepeatAll, nil
	default:
		return RepeatOff, fmt.Errorf("invalid repeat mode %q", s)
	}
}
