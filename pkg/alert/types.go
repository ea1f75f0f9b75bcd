package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Notification describes one threshold crossing to deliver to the user.
type Notification struct {
	// ID correlates the delivery with its journal entry.
	ID string

	// App is the application name as tracked in the ledger.
	App string

	// UsageBytes is the cumulative usage observed at decision time.
	UsageBytes uint64

	// LimitBytes is the configured limit that was crossed.
	LimitBytes uint64

	// Time is when the attempt was decided.
	Time time.Time
}

// Title is the headline shown by desktop notifiers.
func (n Notification) Title() string {
	return "Disk usage limit exceeded"
}

// Body renders the human-readable notification text.
func (n Notification) Body() string {
	return fmt.Sprintf("%s has used %s of disk I/O (limit %s)",
		n.App, humanize.IBytes(n.UsageBytes), humanize.IBytes(n.LimitBytes))
}

// Notifier delivers notifications to the user.
//
// Implementations must be safe for concurrent use; the monitor fans
// deliveries out across workers after winning the throttle.
type Notifier interface {
	// Name identifies the implementation in logs and journal entries.
	Name() string

	// Send delivers one notification. Errors describe a capability failure
	// (the platform refused or the helper binary is missing); the caller's
	// cooldown charge stands either way.
	Send(ctx context.Context, n Notification) error
}
