package playback

import (
	"slices"

	"github.com/llehouerou/cadence/internal/signal"
)

// Gains holds one gain in dB per equalizer band, lowest frequency first.
type Gains = [signal.Bands]float64

const (
	// PresetOff is the flat preset; selecting it disables the equalizer.
	PresetOff = "off"
	// PresetCustom names gains edited band by band.
	PresetCustom = "custom"
)

var presets = map[string]Gains{
	PresetOff:      {},
	"bass-boost":   {8, 6, 4, 2, 0, 0, 0, 0, 0, 0},
	"treble-boost": {0, 0, 0, 0, 0, 0, 2, 4, 6, 8},
	"vocal":        {0, -2, -4, -2, 2, 4, 4, 3, 1, 0},
	"classical":    {0, 0, 0, 0, 0, 0, -2, -2, -2, -4},
	"rock":         {4, 3, 2, 0, -1, -1, 0, 2, 3, 4},
	"pop":          {2, 4, 3, 0, -1, -2, -1, 1, 2, 3},
	"jazz":         {4, 3, 1, 2, -2, -2, 0, 2, 3, 4},
	"electronic":   {4, 3, 1, 0, -2, 2, 1, 2, 3, 4},
}

// Preset returns the gains for name. Unknown names resolve to PresetOff.
func Preset(name string) (string, Gains) {
	g, ok := presets[name]
	if !ok {
		return PresetOff, presets[PresetOff]
	}
	return name, g
}

// PresetNames returns the known preset names, sorted with "off" first.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		if name != PresetOff {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{PresetOff}, names...)
}
