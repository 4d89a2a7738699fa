//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does not
// write to the console.
package stderr

// Capture does nothing on Windows.
func Capture() error { return nil }

// Restore does nothing on Windows.
func Restore() {}
