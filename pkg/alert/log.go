package alert

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the service log instead of a desktop.
// It is the delivery of last resort on headless hosts and the explicit
// choice when the notifier is configured as "log".
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by the default logger.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{
		logger: slog.Default().With("component", "alert"),
	}
}

// Name identifies the notifier in logs and journal entries.
func (l *LogNotifier) Name() string {
	return "log"
}

// Send logs the notification at warning level. It never fails.
func (l *LogNotifier) Send(_ context.Context, n Notification) error {
	l.logger.Warn("disk usage limit exceeded",
		"app", n.App,
		"usage_bytes", n.UsageBytes,
		"limit_bytes", n.LimitBytes,
		"notification_id", n.ID)
	return nil
}
