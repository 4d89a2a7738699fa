package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	dbutil "github.com/llehouerou/cadence/internal/db"
	"github.com/llehouerou/cadence/internal/playback"
)

// SaveSettings persists st, replacing what was saved before.
func (m *Manager) SaveSettings(ctx context.Context, st playback.Settings) error {
	return dbutil.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO player_settings
				(id, volume, rate, shuffle, repeat_mode, equalizer_enabled, equalizer_preset)
			VALUES (1, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				volume = excluded.volume,
				rate = excluded.rate,
				shuffle = excluded.shuffle,
				repeat_mode = excluded.repeat_mode,
				equalizer_enabled = excluded.equalizer_enabled,
				equalizer_preset = excluded.equalizer_preset
		`, st.Volume, st.Rate, st.Shuffle, st.Repeat.String(), st.EqualizerEnabled, st.EqualizerPreset)
		if err != nil {
			return fmt.Errorf("save settings: %w", err)
		}

		for band, gain := range st.EqualizerGains {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO equalizer_bands (band, gain) VALUES (?, ?)
				ON CONFLICT(band) DO UPDATE SET gain = excluded.gain
			`, band, gain)
			if err != nil {
				return fmt.Errorf("save band %d: %w", band, err)
			}
		}

		if err := saveQueue(ctx, tx, listActive, st.Queue); err != nil {
			return fmt.Errorf("save queue: %w", err)
		}
		if err := saveQueue(ctx, tx, listOriginal, st.OriginalQueue); err != nil {
			return fmt.Errorf("save original queue: %w", err)
		}
		return nil
	})
}

// LoadSettings returns the saved settings. The boolean is false when
// nothing has been saved yet.
func (m *Manager) LoadSettings(ctx context.Context) (playback.Settings, bool, error) {
	var st playback.Settings
	var repeat string

	row := m.db.QueryRowContext(ctx, `
		SELECT volume, rate, shuffle, repeat_mode, equalizer_enabled, equalizer_preset
		FROM player_settings WHERE id = 1
	`)
	err := row.Scan(&st.Volume, &st.Rate, &st.Shuffle, &repeat, &st.EqualizerEnabled, &st.EqualizerPreset)
	if errors.Is(err, sql.ErrNoRows) {
		return st, false, nil
	}
	if err != nil {
		return st, false, err
	}

	st.Repeat, err = playback.ParseRepeatMode(repeat)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring saved repeat mode")
	}

	if st.EqualizerGains, err = getBands(ctx, m.db); err != nil {
		return st, false, fmt.Errorf("load equalizer: %w", err)
	}
	if st.Queue, err = getQueue(ctx, m.db, listActive); err != nil {
		return st, false, fmt.Errorf("load queue: %w", err)
	}
	if st.OriginalQueue, err = getQueue(ctx, m.db, listOriginal); err != nil {
		return st, false, fmt.Errorf("load original queue: %w", err)
	}
	return st, true, nil
}

func getBands(ctx context.Context, db *sql.DB) (playback.Gains, error) {
	var gains playback.Gains

	rows, err := db.QueryContext(ctx, `SELECT band, gain FROM equalizer_bands`)
	if err != nil {
		return gains, err
	}
	defer rows.Close()

	for rows.Next() {
		var band int
		var gain float64
		if err := rows.Scan(&band, &gain); err != nil {
			return gains, err
		}
		if band >= 0 && band < len(gains) {
			gains[band] = gain
		}
	}
	return gains, rows.Err()
}
