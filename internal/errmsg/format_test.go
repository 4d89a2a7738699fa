//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackLoad,
			err:      errors.New("file not found"),
			expected: "Failed to load track: file not found",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "resume operation",
			op:       OpPlaybackResume,
			err:      errors.New("blocked"),
			expected: "Failed to resume playback: blocked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackLoad,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			err:      errors.New("permission denied"),
			expected: "Failed to start playback 'song.mp3': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPlaybackLoad,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to load track: permission denied",
		},
		{
			name:     "track title as context",
			op:       OpPlaybackLoad,
			context:  "Blue in Green",
			err:      errors.New("unsupported format"),
			expected: "Failed to load track 'Blue in Green': unsupported format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpPlaybackLoad, OpPlaybackStart, OpPlaybackResume,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
