package alert

import "fmt"

// DeliveryError reports a failed attempt to hand a notification to the
// platform. By the time delivery runs the cooldown window is already
// charged, so callers journal the failure instead of retrying.
type DeliveryError struct {
	Notifier string // Notifier name ("desktop/notify-send", "log", ...)
	Output   string // Captured helper output, if any
	Cause    error  // Underlying error
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("delivery error [notifier=%s]: %v: %s", e.Notifier, e.Cause, e.Output)
	}
	return fmt.Sprintf("delivery error [notifier=%s]: %v", e.Notifier, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

// NewDeliveryError creates a new DeliveryError.
func NewDeliveryError(notifier string, cause error, output string) *DeliveryError {
	return &DeliveryError{
		Notifier: notifier,
		Output:   output,
		Cause:    cause,
	}
}
