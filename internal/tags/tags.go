// Package tags builds playable tracks from local audio files.
package tags

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"
)

// File extensions the player can decode.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
)

// Tag contains the metadata read from a music file.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	TrackNumber int
	DiscNumber  int
	Year        int
}

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtWAV, ExtOGG:
		return true
	}
	return false
}

// TrackID derives a stable track id from the cleaned path.
func TrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(filepath.Clean(path)))
	return fmt.Sprintf("%016x", h.Sum64())
}

// basicTag names the file after its base name, without extension.
func basicTag(path string) *Tag {
	base := filepath.Base(path)
	return &Tag{Path: path, Title: strings.TrimSuffix(base, filepath.Ext(base))}
}
