package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFile = "cadence/cadence.log"

// setupFileLogging points the global logger at the XDG state log, since
// the terminal UI owns stdout. The returned func closes the file.
func setupFileLogging(level zerolog.Level) (func(), error) {
	path, err := xdg.StateFile(logFile)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	setLogger(f, level)
	return func() { f.Close() }, nil
}

// setupConsoleLogging logs to stderr for one-shot subcommands.
func setupConsoleLogging(level zerolog.Level) {
	setLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, level)
}

func setLogger(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
