//go:build !linux

package notify

// New returns a no-op Notifier; only the freedesktop bus is supported.
func New(...Option) (Notifier, error) {
	return nop{}, nil
}
