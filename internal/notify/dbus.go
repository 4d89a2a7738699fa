//go:build linux

package notify

import (
	"fmt"
	"html"
	"net/url"
	"slices"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"
)

const (
	notificationsDest  = "org.freedesktop.Notifications"
	notificationsPath  = "/org/freedesktop/Notifications"
	notificationsIface = "org.freedesktop.Notifications"
)

// caller is the part of dbus.BusObject the notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

type dbusNotifier struct {
	obj    caller
	opts   options
	markup bool // server renders body markup, so text must be escaped
}

// New connects to the notification server on the session bus. Without a
// session bus it returns a no-op Notifier.
func New(opts ...Option) (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		log.Debug().Err(err).Msg("No session bus, notifications disabled")
		return nop{}, nil
	}
	return newDBusNotifier(conn.Object(notificationsDest, notificationsPath), opts...), nil
}

func newDBusNotifier(obj caller, opts ...Option) *dbusNotifier {
	n := &dbusNotifier{obj: obj, opts: newOptions(opts)}

	var caps []string
	if err := obj.Call(notificationsIface+".GetCapabilities", 0).Store(&caps); err != nil {
		log.Debug().Err(err).Msg("Notification capabilities unknown")
	}
	n.markup = slices.Contains(caps, "body-markup")
	return n
}

func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.opts.urgency)),
		"desktop-entry": dbus.MakeVariant("cadence"),
	}
	if notif.Category != "" {
		hints["category"] = dbus.MakeVariant(notif.Category)
	}
	if notif.Image != "" {
		hints["image-path"] = dbus.MakeVariant((&url.URL{Scheme: "file", Path: notif.Image}).String())
	}

	body := notif.Body
	if n.markup {
		body = html.EscapeString(body)
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout) -> id
	var id uint32
	err := n.obj.Call(notificationsIface+".Notify", 0,
		n.opts.appName,
		notif.Replaces,
		n.opts.icon,
		notif.Summary,
		body,
		[]string{},
		hints,
		n.opts.expireMillis(),
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

func (n *dbusNotifier) Close(id uint32) error {
	if err := n.obj.Call(notificationsIface+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("close notification %d: %w", id, err)
	}
	return nil
}
