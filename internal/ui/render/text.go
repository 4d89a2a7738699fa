// Package render provides text helpers shared by the terminal components.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops escape sequences, control characters (except tab) and
// invalid UTF-8 bytes from tag metadata before it reaches the terminal.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	if strings.IndexByte(s, '\x1b') >= 0 {
		s = ansi.Strip(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			// invalid byte
			i++
			continue
		}
		if r != '\t' && unicode.IsControl(r) {
			i += size
			continue
		}
		// Replace non-breaking space with regular space
		if r == '\u00a0' {
			b.WriteByte(' ')
			i += size
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// needsSanitize returns true if the string contains bytes that need sanitizing.
func needsSanitize(s string) bool {
	for i := range len(s) {
		b := s[i]
		if b < 0x20 && b != '\t' { // ASCII control chars (except tab)
			return true
		}
		if b >= 0x80 && b <= 0x9f { // C1 control range / invalid lead bytes
			return true
		}
		if b == 0xc2 { // Potential 2-byte sequence for U+00A0 (NBSP) or C1 controls
			if i+1 < len(s) && s[i+1] == 0xa0 {
				return true
			}
		}
	}
	return false
}

// Truncate shortens a string to fit within maxWidth, adding an ellipsis if
// truncated. Wide characters (CJK, emoji) count for their display width.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// TruncateAndPad truncates a string if necessary, then pads to the exact width.
func TruncateAndPad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width), width)
}

// Row creates a row with left and right aligned content separated by spaces.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator creates a horizontal separator line of the specified width.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}

// EmptyLine creates a blank line of the specified width.
func EmptyLine(width int) string {
	return strings.Repeat(" ", max(width, 0))
}

// Duration formats d as m:ss, or h:mm:ss past the hour.
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h, m, sec := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
