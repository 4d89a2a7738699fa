package tags

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlist"
)

const appName = "cadence"

// ReadTrack builds a playable track from the file at path. Metadata is
// best effort; a file the player cannot decode is an error.
func ReadTrack(path string) (playlist.Track, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return playlist.Track{}, err
	}

	duration, err := player.Probe(abs)
	if err != nil {
		return playlist.Track{}, fmt.Errorf("probe %s: %w", path, err)
	}

	t, err := Read(abs)
	if err != nil {
		log.Debug().Err(err).Str("path", abs).Msg("No readable tags")
		t = basicTag(abs)
	}

	track := playlist.Track{
		ID:       TrackID(abs),
		Title:    t.Title,
		Artist:   t.Artist,
		Album:    t.Album,
		Duration: duration,
		Source:   abs,
	}

	track.CoverImage = FindFolderCover(abs)
	if track.CoverImage == "" {
		cover, err := CachedEmbeddedCover(abs, track.ID)
		if err != nil {
			log.Debug().Err(err).Str("path", abs).Msg("Caching embedded cover failed")
		}
		track.CoverImage = cover
	}
	return track, nil
}

// Collect expands paths into music files. Directories are walked
// recursively and their files sorted by path; plain files are kept in the
// order given.
func Collect(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			files = append(files, p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsMusicFile(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		slices.Sort(found)
		files = append(files, found...)
	}
	return files, nil
}

// ReadTracks reads every path, skipping files that cannot be played.
func ReadTracks(paths []string) []playlist.Track {
	tracks := make([]playlist.Track, 0, len(paths))
	for _, p := range paths {
		t, err := ReadTrack(p)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("Skipping file")
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks
}
