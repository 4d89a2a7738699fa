package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS recently_played (
			play_id TEXT PRIMARY KEY,
			track_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			album TEXT,
			cover_image TEXT,
			duration_ms INTEGER,
			source TEXT NOT NULL,
			played_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recently_played_at ON recently_played(played_at DESC);

		CREATE TABLE IF NOT EXISTS player_settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			volume REAL NOT NULL,
			rate REAL NOT NULL DEFAULT 1,
			shuffle INTEGER NOT NULL DEFAULT 0,
			repeat_mode TEXT NOT NULL DEFAULT 'off',
			equalizer_enabled INTEGER NOT NULL DEFAULT 0,
			equalizer_preset TEXT NOT NULL DEFAULT 'off'
		);

		CREATE TABLE IF NOT EXISTS equalizer_bands (
			band INTEGER PRIMARY KEY,
			gain REAL NOT NULL
		);

		CREATE TABLE IF NOT EXISTS queue_tracks (
			list TEXT NOT NULL CHECK (list IN ('active', 'original')),
			position INTEGER NOT NULL,
			track_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT,
			album TEXT,
			cover_image TEXT,
			duration_ms INTEGER,
			source TEXT NOT NULL,
			PRIMARY KEY (list, position)
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
