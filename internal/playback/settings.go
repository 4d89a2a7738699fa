package playback

import (
	"github.com/llehouerou/cadence/internal/playlist"
)

// Settings is the part of a session that survives a restart.
type Settings struct {
	Volume           float64
	Rate             float64
	Shuffle          bool
	Repeat           RepeatMode
	EqualizerEnabled bool
	EqualizerPreset  string
	EqualizerGains   Gains
	Queue            []playlist.Track
	OriginalQueue    []playlist.Track
}

// Settings extracts the persistent part of s. A disabled equalizer saves
// the gains it would restore.
func (s Session) Settings() Settings {
	gains := s.EqualizerGains
	if !s.EqualizerEnabled {
		gains = s.savedGains
	}
	return Settings{
		Volume:           s.Volume,
		Rate:             s.Rate,
		Shuffle:          s.Shuffle,
		Repeat:           s.Repeat,
		EqualizerEnabled: s.EqualizerEnabled,
		EqualizerPreset:  s.EqualizerPreset,
		EqualizerGains:   gains,
		Queue:            playlist.Clone(s.Queue),
		OriginalQueue:    playlist.Clone(s.OriginalQueue),
	}
}

// SessionFromSettings builds a fresh session from saved settings, fixing up
// anything that would break session invariants. No track is current.
func SessionFromSettings(st Settings) Session {
	e := NewEngine(nil)
	s := NewSession()

	s, _ = e.Apply(s, SetVolume{Level: st.Volume})
	if st.Rate > 0 {
		s, _ = e.Apply(s, SetRate{Rate: st.Rate})
	}
	s.Repeat = st.Repeat
	if s.Repeat < RepeatOff || s.Repeat > RepeatAll {
		s.Repeat = RepeatOff
	}

	s.Shuffle = st.Shuffle
	s.Queue = playlist.Clone(st.Queue)
	s.OriginalQueue = playlist.Clone(st.OriginalQueue)
	if !s.Shuffle || !playlist.SameTracks(s.Queue, s.OriginalQueue) {
		s.OriginalQueue = playlist.Clone(s.Queue)
	}

	if st.EqualizerPreset != PresetCustom {
		s, _ = e.Apply(s, SetEqualizerPreset{Name: st.EqualizerPreset})
	} else {
		for i, g := range st.EqualizerGains {
			s, _ = e.Apply(s, SetEqualizerBand{Index: i, Gain: g})
		}
		s.EqualizerEnabled = true
		s.savedGains = s.EqualizerGains
	}
	if !st.EqualizerEnabled && s.EqualizerEnabled {
		s, _ = e.Apply(s, ToggleEqualizer{})
	}
	return s
}
