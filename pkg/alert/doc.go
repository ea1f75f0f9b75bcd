// Package alert decides when threshold crossings may notify the user and
// delivers those notifications.
//
// # Throttling
//
// Crossing a usage threshold is a persistent condition: once an application
// is over its limit it stays over on every subsequent check. The Throttle
// turns that continuous condition into discrete alerts by allowing at most
// one attempt per application per cooldown window. The decision and the
// charge happen in one critical section, so concurrent checks race safely.
//
// The window is charged on the attempt, before delivery runs. A failed
// delivery therefore does not re-arm the alert; the user is not retried
// until the window elapses.
//
// # Delivery
//
// Notifier implementations deliver to the platform's desktop notification
// facility (notify-send, osascript, PowerShell toasts) or to the service
// log on headless hosts. The monitor owns the throttle and calls notifiers
// only after an Attempted outcome.
package alert
