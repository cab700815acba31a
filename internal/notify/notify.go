// Package notify raises desktop notifications over the D-Bus session bus.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/Christopher-Hayes/sleepy-hyprland/internal/common"
)

const defaultExpire = 5 * time.Second

// Notifier delivers a short message to the user.
type Notifier interface {
	Notify(ctx context.Context, summary, body string) error
}

// Silent is a no-op Notifier used when notifications are disabled.
type Silent struct{}

func (Silent) Notify(context.Context, string, string) error { return nil }

// DBus sends notifications through org.freedesktop.Notifications.
type DBus struct {
	AppName string
	Icon    string
	Expire  time.Duration
	Urgency byte
}

// NewDBus returns a notifier with sleepy-hyprland defaults
func NewDBus() *DBus {
	return &DBus{
		AppName: common.AppName,
		Icon:    "network-error",
		Expire:  defaultExpire,
		Urgency: common.UrgencyNormal,
	}
}

// Notify connects to the session bus for the duration of the call.
func (d *DBus) Notify(ctx context.Context, summary, body string) error {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(common.NotifyDestination, dbus.ObjectPath(common.NotifyObjectPath))
	call := obj.CallWithContext(ctx, common.NotifyMethod, 0, d.args(summary, body)...)
	if call.Err != nil {
		return fmt.Errorf("failed to call Notifications.Notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("failed to parse Notify response: %w", err)
	}
	return nil
}

// args builds the Notify(susssasa{sv}i) argument list.
func (d *DBus) args(summary, body string) []interface{} {
	return []interface{}{
		d.AppName,
		uint32(0),
		d.Icon,
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(d.Urgency),
		},
		int32(d.Expire / time.Millisecond),
	}
}
