/*
Package monitor runs the accounting loop that ties Datawarden Vigil
together.

The Service samples the process table on a fast tick, folds per-application
I/O deltas into the usage ledger, and evaluates every application over the
configured limit against the alert throttle. Winning the throttle charges
the cooldown window first; only then is the notification handed to the
notifier, and the attempt is journaled with its delivery outcome either
way. On a slower tick (and once more at shutdown) the ledger is copied out
and handed to the store backend.

The loop owns the previous snapshot, so snapshot diffing is single-threaded
by construction. Alert evaluation fans out across a bounded worker group;
the throttle and ledger are safe for that concurrency. Snapshot capture and
store writes run with no shared lock held.

Example:

	svc := monitor.NewService(&monitor.Config{
		DataLimitBytes:  1 << 30,
		CheckInterval:   time.Minute,
		PersistInterval: 5 * time.Minute,
	}, monitor.Deps{
		Source:   source,
		Ledger:   usage.NewLedger(),
		Throttle: alert.NewThrottle(5 * time.Minute),
		Notifier: notifier,
		Store:    backend,
	})
	if err := svc.Restore(ctx); err != nil {
		// corrupt state: caller decides whether to reset or abort
	}
	err := svc.Run(ctx)
*/
package monitor
