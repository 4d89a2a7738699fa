package playlist

// History is the append-only record of tracks in the order they were played.
// It never shrinks; Append returns a new History sharing no storage with the
// receiver so older snapshots stay valid.
type History struct {
	tracks []Track
}

// NewHistory creates an empty play history.
func NewHistory(tracks ...Track) History {
	return History{tracks: Clone(tracks)}
}

// Append returns the history with t added at the end.
func (h History) Append(t Track) History {
	tracks := make([]Track, len(h.tracks), len(h.tracks)+1)
	copy(tracks, h.tracks)
	return History{tracks: append(tracks, t)}
}

// Len returns the number of recorded plays.
func (h History) Len() int {
	return len(h.tracks)
}

// Tracks returns a copy of all recorded plays, oldest first.
func (h History) Tracks() []Track {
	return Clone(h.tracks)
}

// Previous returns the entry immediately before the most recent one.
// Returns false when fewer than two plays were recorded.
func (h History) Previous() (Track, bool) {
	if len(h.tracks) < 2 {
		return Track{}, false
	}
	return h.tracks[len(h.tracks)-2], true
}

// Last returns the most recent entry, if any.
func (h History) Last() (Track, bool) {
	if len(h.tracks) == 0 {
		return Track{}, false
	}
	return h.tracks[len(h.tracks)-1], true
}
