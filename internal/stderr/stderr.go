//go:build !windows

// Package stderr redirects file descriptor 2 into the log while the TUI
// owns the terminal. The audio backend (ALSA through oto) writes there
// directly, bypassing os.Stderr.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
)

var (
	mu        sync.Mutex
	orig      = -1
	pipeRead  *os.File
	pipeWrite *os.File
	done      chan struct{}
)

// Capture starts forwarding stderr lines to the logger at warn level.
// It must run before the speaker is initialized. Capture is idempotent.
func Capture() error {
	mu.Lock()
	defer mu.Unlock()
	if orig >= 0 {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	saved, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		_ = r.Close()
		_ = w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		_ = syscall.Close(saved)
		_ = r.Close()
		_ = w.Close()
		return err
	}

	orig, pipeRead, pipeWrite = saved, r, w
	done = make(chan struct{})
	go forward(r, done)
	return nil
}

func forward(r *os.File, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn().Str("source", "stderr").Msg(line)
		}
	}
}

// Restore points fd 2 back at the terminal and drains pending lines.
func Restore() {
	mu.Lock()
	defer mu.Unlock()
	if orig < 0 {
		return
	}

	_ = syscall.Dup2(orig, int(os.Stderr.Fd()))
	_ = syscall.Close(orig)
	_ = pipeWrite.Close()
	<-done
	_ = pipeRead.Close()
	orig = -1
}
