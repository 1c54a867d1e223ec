//go:build linux

package notify

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	appName = "nowplaying"

	notificationsDest = "org.freedesktop.Notifications"
	notificationsPath = "/org/freedesktop/Notifications"
	notifyMethod      = notificationsDest + ".Notify"
	closeMethod       = notificationsDest + ".CloseNotification"
	expireTimeout     = int32(5000) // ms
	urgencyLow        = byte(0)
)

// dbusNotifier talks to the freedesktop notification server.
type dbusNotifier struct {
	obj dbus.BusObject

	// mu is held across calls so a Show always sees the id of the one
	// before it.
	mu sync.Mutex
	id uint32
}

// New connects to the session bus. Without one, notifications are
// silently dropped.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nopNotifier{}, nil //nolint:nilerr // notifications are optional
	}
	return newDBusNotifier(conn.Object(notificationsDest, notificationsPath)), nil
}

func newDBusNotifier(obj dbus.BusObject) *dbusNotifier {
	return &dbusNotifier{obj: obj}
}

// Show sends m, replacing the previous notification.
func (n *dbusNotifier) Show(m Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgencyLow),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	call := n.obj.Call(notifyMethod, 0,
		appName, n.id, m.Icon, m.Summary, m.Body, []string{}, hints, expireTimeout)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify reply: %w", err)
	}
	n.id = id
	return nil
}

// Dismiss closes the last notification shown.
func (n *dbusNotifier) Dismiss() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.id == 0 {
		return nil
	}
	call := n.obj.Call(closeMethod, 0, n.id)
	n.id = 0
	return call.Err
}
