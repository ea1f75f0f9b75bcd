//go:build linux
// +build linux

package alert

import (
	"context"
	"fmt"
	"os/exec"
)

// DesktopNotifier delivers notifications through the desktop environment,
// using notify-send on Linux.
type DesktopNotifier struct{}

// NewDesktopNotifier returns the platform desktop notifier. It fails when
// the notify-send helper is not installed.
func NewDesktopNotifier() (*DesktopNotifier, error) {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return nil, fmt.Errorf("desktop notifier unavailable: %w", err)
	}
	return &DesktopNotifier{}, nil
}

// Name identifies the notifier in logs and journal entries.
func (d *DesktopNotifier) Name() string {
	return "desktop/notify-send"
}

// Send invokes notify-send. Arguments travel as an argv vector, so
// application names need no shell escaping.
func (d *DesktopNotifier) Send(ctx context.Context, n Notification) error {
	cmd := execCommand(ctx, "notify-send",
		"--urgency=critical",
		"--app-name="+appName,
		n.Title(), n.Body())
	if out, err := cmd.CombinedOutput(); err != nil {
		return NewDeliveryError(d.Name(), err, string(out))
	}
	return nil
}
