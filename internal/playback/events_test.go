package playback

import (
	"errors"
	"testing"

	"github.com/llehouerou/cadence/internal/errmsg"
)

func TestErrorEvent_Message(t *testing.T) {
	tests := []struct {
		name string
		ev   ErrorEvent
		want string
	}{
		{
			name: "load",
			ev:   ErrorEvent{Op: errmsg.OpPlaybackLoad, TrackID: "a", Title: "So What", Err: errors.New("no such file")},
			want: "Failed to load track 'So What': no such file",
		},
		{
			name: "untitled",
			ev:   ErrorEvent{Op: errmsg.OpPlaybackLoad, TrackID: "a", Err: errors.New("no such file")},
			want: "Failed to load track: no such file",
		},
		{
			name: "start",
			ev:   ErrorEvent{Op: errmsg.OpPlaybackStart, Err: errors.New("device busy")},
			want: "Failed to start playback: device busy",
		},
		{
			name: "nil error",
			ev:   ErrorEvent{Op: errmsg.OpPlaybackResume},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}
