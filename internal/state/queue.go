package state

import (
	"context"
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/cadence/internal/db"
	"github.com/llehouerou/cadence/internal/playlist"
)

const (
	listActive   = "active"
	listOriginal = "original"
)

func getQueue(ctx context.Context, db *sql.DB, list string) ([]playlist.Track, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT track_id, title, artist, album, cover_image, duration_ms, source
		FROM queue_tracks
		WHERE list = ?
		ORDER BY position
	`, list)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []playlist.Track
	for rows.Next() {
		var t playlist.Track
		var artist, album, cover sql.NullString
		var durationMS sql.NullInt64

		err := rows.Scan(&t.ID, &t.Title, &artist, &album, &cover, &durationMS, &t.Source)
		if err != nil {
			return nil, err
		}

		t.Artist = dbutil.NullStringValue(artist)
		t.Album = dbutil.NullStringValue(album)
		t.CoverImage = dbutil.NullStringValue(cover)
		t.Duration = time.Duration(dbutil.NullInt64Value(durationMS)) * time.Millisecond
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func saveQueue(ctx context.Context, tx *sql.Tx, list string, tracks []playlist.Track) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM queue_tracks WHERE list = ?`, list); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO queue_tracks
			(list, position, track_id, title, artist, album, cover_image, duration_ms, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tracks {
		_, err = stmt.ExecContext(ctx, list, i, t.ID, t.Title,
			dbutil.NullString(t.Artist), dbutil.NullString(t.Album), dbutil.NullString(t.CoverImage),
			dbutil.NullInt64(t.Duration.Milliseconds()), t.Source)
		if err != nil {
			return err
		}
	}
	return nil
}
