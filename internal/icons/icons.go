// Package icons selects the glyphs used for transport status and mode badges.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the glyphs for one style.
type Icons struct {
	Playing   string
	Paused    string
	Stopped   string
	Shuffle   string
	RepeatAll string
	RepeatOne string
	Equalizer string
}

var (
	nerdIcons = Icons{
		Playing:   "\uf04b",     // nf-fa-play
		Paused:    "\uf04c",     // nf-fa-pause
		Stopped:   "\uf04d",     // nf-fa-stop
		Shuffle:   "\U000f049f", // nf-md-shuffle
		RepeatAll: "\U000f0456", // nf-md-repeat
		RepeatOne: "\U000f0458", // nf-md-repeat_once
		Equalizer: "\uf1de",     // nf-fa-sliders
	}

	unicodeIcons = Icons{
		Playing:   "▶",
		Paused:    "⏸",
		Stopped:   "⏹",
		Shuffle:   "🔀",
		RepeatAll: "🔁",
		RepeatOne: "🔂",
		Equalizer: "🎚",
	}

	// noneIcons spells the modes out for terminals without emoji fonts.
	noneIcons = Icons{
		Playing:   "▶",
		Paused:    "⏸",
		Stopped:   "■",
		Shuffle:   "shuffle",
		RepeatAll: "repeat all",
		RepeatOne: "repeat one",
		Equalizer: "eq",
	}

	current = noneIcons
)

// Valid reports whether style names a known icon style.
func Valid(style string) bool {
	switch Style(style) {
	case StyleNerd, StyleUnicode, StyleNone:
		return true
	}
	return false
}

// Init selects the icon set. Call this once at startup with the config value;
// unknown styles fall back to none.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

func Playing() string   { return current.Playing }
func Paused() string    { return current.Paused }
func Stopped() string   { return current.Stopped }
func Shuffle() string   { return current.Shuffle }
func RepeatAll() string { return current.RepeatAll }
func RepeatOne() string { return current.RepeatOne }

// Equalizer returns the badge for the active equalizer preset.
func Equalizer(preset string) string {
	return current.Equalizer + " " + preset
}
