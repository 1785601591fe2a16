// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/godbus/dbus/v5"
)

const (
	NotificationsServiceName = "org.freedesktop.Notifications"
	NotificationsObjectPath  = "/org/freedesktop/Notifications"
	NotifyMethod             = "org.freedesktop.Notifications.Notify"

	notificationTimeoutMs = 5000
)

type Notifier interface {
	Notify(summary, body string) error
}

type DesktopNotifier struct {
	AppName string
}

func (n DesktopNotifier) Notify(summary, body string) error {
	if !sessionBusAvailable() {
		return fmt.Errorf("no session bus")
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	defer conn.Close()

	notifications := conn.Object(NotificationsServiceName, NotificationsObjectPath)

	var id uint32
	err = notifications.Call(NotifyMethod, 0,
		n.AppName,
		uint32(0),
		"video-x-generic",
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(1))},
		int32(notificationTimeoutMs),
	).Store(&id)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// sessionBusAvailable avoids dbus-launch autolaunching a bus on headless hosts.
func sessionBusAvailable() bool {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") != "" {
		return true
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(runtimeDir, "bus"))
	return err == nil
}

func NotifyResult(n Notifier, summary *Summary, runErr error) error {
	if n == nil || summary == nil {
		return nil
	}

	switch {
	case runErr == nil:
		return n.Notify("Video exported", fmt.Sprintf("%d clips saved to %s", summary.Loaded, summary.OutputPath))
	case IsHalt(runErr):
		return n.Notify("Nothing exported", runErr.Error())
	default:
		return n.Notify("Export failed", runErr.Error())
	}
}
