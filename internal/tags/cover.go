package tags

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // register decoder for embedded PNG covers
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dhowden/tag"
	"github.com/nfnt/resize"
)

// CoverSize bounds the cached embedded cover, in pixels per side.
const CoverSize = 512

// Common cover art filenames to look for in album folders, in priority order.
var coverArtFilenames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

// FindFolderCover looks for album art next to the track. It returns the
// image path or "" when there is none.
func FindFolderCover(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range coverArtFilenames {
		for _, candidate := range []string{name, strings.ToUpper(name)} {
			p := filepath.Join(dir, candidate)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p
			}
		}
	}
	return ""
}

// CachedEmbeddedCover writes the picture embedded in the file at path to
// the cover cache and returns the cached path, or "" when the file has no
// picture. Decodable pictures are cached as JPEG thumbnails no larger than
// CoverSize; anything else is cached as is.
func CachedEmbeddedCover(path, id string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return "", nil //nolint:nilerr // untagged files have no embedded art
	}
	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return "", nil
	}

	data, ext := thumbnail(pic.Data), ".jpg"
	if data == nil {
		data = pic.Data
		if pic.MIMEType == "image/png" || strings.EqualFold(pic.Ext, "png") {
			ext = ".png"
		}
	}

	cachePath, err := xdg.CacheFile(filepath.Join(appName, "covers", id+ext))
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		return "", err
	}
	return cachePath, nil
}

// thumbnail scales an encoded image down to CoverSize and re-encodes it as
// JPEG. It returns nil when data is not a decodable image.
func thumbnail(data []byte) []byte {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	small := resize.Thumbnail(CoverSize, CoverSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: 90}); err != nil {
		return nil
	}
	return buf.Bytes()
}
