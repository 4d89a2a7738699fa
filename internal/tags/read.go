package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from a music file.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if strings.ToLower(filepath.Ext(path)) == ExtMP3 {
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2Fallback(path)
		}
		return nil, err
	}

	t := basicTag(path)
	if title := m.Title(); title != "" {
		t.Title = title
	}
	t.Artist = m.Artist()
	t.AlbumArtist = m.AlbumArtist()
	if t.AlbumArtist == "" {
		t.AlbumArtist = t.Artist
	}
	t.Album = m.Album()
	t.Genre = m.Genre()
	t.TrackNumber, _ = m.Track()
	t.DiscNumber, _ = m.Disc()
	t.Year = m.Year()
	return t, nil
}
