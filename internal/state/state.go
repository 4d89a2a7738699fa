// Package state persists what the player remembers between runs: the
// recently played list, the player settings and the saved queue.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/cadence/internal/playback"
)

const (
	appName      = "cadence"
	dbFileName   = "cadence.db"
	saveDebounce = 500 * time.Millisecond

	// MemoryPath opens a private in-memory database.
	MemoryPath = ":memory:"
)

type Manager struct {
	db  *sql.DB
	now func() time.Time

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *playback.Settings
}

// Open opens the database at path, creating it and its schema if needed.
// An empty path selects the default location under the XDG data dir.
func Open(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps :memory: a single database and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure %s: %w", path, err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: db, now: time.Now}, nil
}

// DefaultPath returns the database location under the XDG data dir.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Close flushes a pending settings save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		if err := m.SaveSettings(context.Background(), *pending); err != nil {
			log.Warn().Err(err).Msg("Flushing settings failed")
		}
	}

	return m.db.Close()
}

// ScheduleSettings saves st after a short quiet period. Later calls
// replace earlier ones; Close flushes whatever is pending.
func (m *Manager) ScheduleSettings(st playback.Settings) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &st

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			if err := m.SaveSettings(context.Background(), *pending); err != nil {
				log.Warn().Err(err).Msg("Saving settings failed")
			}
		}
	})
}
