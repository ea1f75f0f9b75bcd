// Package retention enforces retention policies on the alert journal.
//
// # Pruning
//
// Pruning happens in two phases:
//
//  1. Age-based: delete entries older than RetentionDays
//  2. Count-based: if total entries exceed MaxEntries, delete oldest
//
// Both phases can run together. Entries can optionally be archived to JSON
// files before deletion.
//
// # Scheduling
//
// The pruner runs on a cron schedule (default daily at 3 AM):
//
//	pruner := retention.NewPruner(store, &retention.Config{
//	    RetentionDays: 90,
//	    PruneSchedule: "0 3 * * *",
//	})
//	if err := pruner.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer pruner.Stop()
//
// Prune can also be called directly for one-off cleanup.
package retention
