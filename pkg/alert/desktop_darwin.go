//go:build darwin
// +build darwin

package alert

import (
	"context"
	"fmt"
	"os/exec"
)

// DesktopNotifier delivers notifications through Notification Center,
// using osascript on macOS.
type DesktopNotifier struct{}

// NewDesktopNotifier returns the platform desktop notifier.
func NewDesktopNotifier() (*DesktopNotifier, error) {
	if _, err := exec.LookPath("osascript"); err != nil {
		return nil, fmt.Errorf("desktop notifier unavailable: %w", err)
	}
	return &DesktopNotifier{}, nil
}

// Name identifies the notifier in logs and journal entries.
func (d *DesktopNotifier) Name() string {
	return "desktop/osascript"
}

// Send builds an AppleScript display-notification command. Values are
// escaped before being embedded in the script source, so quotes in
// application names cannot break out of the string literal.
func (d *DesktopNotifier) Send(ctx context.Context, n Notification) error {
	script := fmt.Sprintf("display notification \"%s\" with title \"%s\"",
		escapeAppleScript(n.Body()), escapeAppleScript(n.Title()))
	cmd := execCommand(ctx, "osascript", "-e", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return NewDeliveryError(d.Name(), err, string(out))
	}
	return nil
}
