package tags

import (
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// readMP3WithID3v2Fallback reads MP3 metadata using only the id3v2 library.
func readMP3WithID3v2Fallback(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	t := basicTag(path)
	if title := id3tag.Title(); title != "" {
		t.Title = title
	}
	t.Artist = id3tag.Artist()
	t.AlbumArtist = getID3TextFrame(id3tag, "TPE2")
	if t.AlbumArtist == "" {
		t.AlbumArtist = t.Artist
	}
	t.Album = id3tag.Album()
	t.Genre = id3tag.Genre()
	t.TrackNumber = parseNumber(getID3TextFrame(id3tag, "TRCK"))
	t.DiscNumber = parseNumber(getID3TextFrame(id3tag, "TPOS"))
	if y := id3tag.Year(); len(y) >= 4 {
		t.Year, _ = strconv.Atoi(y[:4])
	}
	return t, nil
}

// parseNumber parses a number that may be "N" or "N/Total".
func parseNumber(s string) int {
	num, _, _ := strings.Cut(s, "/")
	n, _ := strconv.Atoi(strings.TrimSpace(num))
	return n
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
