// Package notify announces track changes as desktop notifications.
package notify

import "time"

// Urgency is a freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// CategoryTrack is the vendor category hint carried by track announcements.
const CategoryTrack = "x-cadence.track"

// DefaultTimeout is how long a notification stays up unless configured.
const DefaultTimeout = 5 * time.Second

// Notification is one desktop notification.
type Notification struct {
	Summary  string
	Body     string
	Image    string // cover file, sent as the image-path hint
	Category string
	Replaces uint32 // id of the notification to update in place
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its id, or 0 when notifications are
	// unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Option configures a Notifier.
type Option func(*options)

type options struct {
	appName string
	icon    string
	urgency Urgency
	timeout time.Duration
}

func newOptions(opts []Option) options {
	o := options{
		appName: "Cadence",
		icon:    "audio-x-generic",
		urgency: UrgencyLow,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTimeout sets how long notifications stay up. Zero keeps them until
// dismissed; a negative value leaves it to the server.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithUrgency sets the urgency of every notification sent.
func WithUrgency(u Urgency) Option {
	return func(o *options) { o.urgency = u }
}

// expireMillis is the timeout as the protocol's expire_timeout.
func (o options) expireMillis() int32 {
	if o.timeout < 0 {
		return -1
	}
	return int32(min(o.timeout.Milliseconds(), int64(1<<31-1)))
}

// nop is the Notifier used when no notification server is reachable.
type nop struct{}

func (nop) Notify(Notification) (uint32, error) { return 0, nil }
func (nop) Close(uint32) error                  { return nil }
