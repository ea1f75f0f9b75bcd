//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package alert

import (
	"context"
	"errors"
)

var errUnsupported = errors.New("desktop notifications not supported on this platform")

// DesktopNotifier is a placeholder on platforms without a supported
// notification facility. Use the log notifier instead.
type DesktopNotifier struct{}

// NewDesktopNotifier always fails on unsupported platforms.
func NewDesktopNotifier() (*DesktopNotifier, error) {
	return nil, errUnsupported
}

// Name identifies the notifier in logs and journal entries.
func (d *DesktopNotifier) Name() string {
	return "desktop/unsupported"
}

// Send always fails on unsupported platforms.
func (d *DesktopNotifier) Send(ctx context.Context, n Notification) error {
	return errUnsupported
}
