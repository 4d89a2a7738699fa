package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	dbutil "github.com/llehouerou/cadence/internal/db"
	"github.com/llehouerou/cadence/internal/playlist"
)

// MaxRecent is how many plays the recently played list keeps.
const MaxRecent = 100

// Play is one entry of the recently played list.
type Play struct {
	ID       string
	Track    playlist.Track
	PlayedAt time.Time
}

// Record appends track to the recently played list and drops the oldest
// entries beyond MaxRecent.
func (m *Manager) Record(ctx context.Context, track playlist.Track) error {
	return dbutil.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recently_played
				(play_id, track_id, title, artist, album, cover_image, duration_ms, source, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), track.ID, track.Title,
			dbutil.NullString(track.Artist), dbutil.NullString(track.Album),
			dbutil.NullString(track.CoverImage), dbutil.NullInt64(track.Duration.Milliseconds()),
			track.Source, m.now().UnixMilli())
		if err != nil {
			return fmt.Errorf("insert play: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM recently_played WHERE rowid NOT IN (
				SELECT rowid FROM recently_played
				ORDER BY played_at DESC, rowid DESC
				LIMIT ?
			)
		`, MaxRecent)
		return err
	})
}

// RecentlyPlayed returns up to limit plays, newest first. A non-positive
// limit returns all retained plays.
func (m *Manager) RecentlyPlayed(ctx context.Context, limit int) ([]Play, error) {
	if limit <= 0 {
		limit = MaxRecent
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT play_id, track_id, title, artist, album, cover_image, duration_ms, source, played_at
		FROM recently_played
		ORDER BY played_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var playedAt int64
		var artist, album, cover sql.NullString
		var durationMS sql.NullInt64

		err := rows.Scan(&p.ID, &p.Track.ID, &p.Track.Title, &artist, &album, &cover,
			&durationMS, &p.Track.Source, &playedAt)
		if err != nil {
			return nil, err
		}

		p.Track.Artist = dbutil.NullStringValue(artist)
		p.Track.Album = dbutil.NullStringValue(album)
		p.Track.CoverImage = dbutil.NullStringValue(cover)
		p.Track.Duration = time.Duration(dbutil.NullInt64Value(durationMS)) * time.Millisecond
		p.PlayedAt = time.UnixMilli(playedAt)
		plays = append(plays, p)
	}
	return plays, rows.Err()
}
