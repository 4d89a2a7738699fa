// Package playlist holds the track value and the ordered-sequence operations
// the playback engine builds its queue on.
package playlist

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// Track is an immutable playable item. Two tracks with the same ID are the
// same track for the lifetime of a session.
type Track struct {
	ID         string // opaque, unique
	Title      string
	Artist     string
	Album      string
	CoverImage string // cover art reference (file path or URL)
	Duration   time.Duration
	Source     string // audio source reference resolved by the output
}

// IndexOf returns the position of the first track with the given id, or -1.
func IndexOf(tracks []Track, id string) int {
	_, idx, ok := lo.FindIndexOf(tracks, func(t Track) bool { return t.ID == id })
	if !ok {
		return -1
	}
	return idx
}

// Clone returns a copy of tracks that never aliases the input.
// A nil input yields an empty, non-nil slice.
func Clone(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}

// Move removes the track at from and reinserts it at to.
// It is a single-element move, not a swap: Move([A,B,C,D], 0, 2) is [B,C,A,D].
// Returns the input unchanged and false if either index is out of bounds.
func Move(tracks []Track, from, to int) ([]Track, bool) {
	if from < 0 || from >= len(tracks) {
		return tracks, false
	}
	if to < 0 || to >= len(tracks) {
		return tracks, false
	}

	result := Clone(tracks)
	if from == to {
		return result, true
	}

	track := result[from]
	result = slices.Delete(result, from, from+1)
	result = slices.Insert(result, to, track)
	return result, true
}

// SameTracks reports whether a and b hold the same multiset of track ids,
// regardless of order.
func SameTracks(a, b []Track) bool {
	if len(a) != len(b) {
		return false
	}
	counts := lo.CountValuesBy(a, func(t Track) string { return t.ID })
	for _, t := range b {
		if counts[t.ID] == 0 {
			return false
		}
		counts[t.ID]--
	}
	return true
}

// IDs returns the ids of tracks in order.
func IDs(tracks []Track) []string {
	return lo.Map(tracks, func(t Track, _ int) string { return t.ID })
}
