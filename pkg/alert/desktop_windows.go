//go:build windows
// +build windows

package alert

import (
	"context"
	"fmt"
	"os/exec"
)

// DesktopNotifier delivers notifications on Windows through msg.exe, which
// posts a transient message to the interactive session.
type DesktopNotifier struct{}

// NewDesktopNotifier returns the platform desktop notifier. It fails on
// editions that do not ship msg.exe.
func NewDesktopNotifier() (*DesktopNotifier, error) {
	if _, err := exec.LookPath("msg"); err != nil {
		return nil, fmt.Errorf("desktop notifier unavailable: %w", err)
	}
	return &DesktopNotifier{}, nil
}

// Name identifies the notifier in logs and journal entries.
func (d *DesktopNotifier) Name() string {
	return "desktop/msg"
}

// Send posts the message to all sessions with a 30 second display time.
// Arguments travel as an argv vector, so no shell escaping is needed.
func (d *DesktopNotifier) Send(ctx context.Context, n Notification) error {
	cmd := execCommand(ctx, "msg", "*", "/TIME:30", n.Title()+": "+n.Body())
	if out, err := cmd.CombinedOutput(); err != nil {
		return NewDeliveryError(d.Name(), err, string(out))
	}
	return nil
}
