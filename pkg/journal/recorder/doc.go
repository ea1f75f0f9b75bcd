// Package recorder provides asynchronous journaling of alert attempts.
//
// # Recording Flow
//
// Entries are recorded asynchronously so the monitor's accounting loop never
// waits on storage:
//
//  1. Monitor detects an application over its limit and attempts delivery
//  2. Recorder assigns the entry an ID and enqueues it (non-blocking)
//  3. Background goroutine drains the channel and writes to storage
//  4. Graceful shutdown drains the channel before exit (zero data loss)
//
// # Basic Usage
//
//	rec := recorder.NewRecorder(store, &recorder.Config{
//	    Enabled:      true,
//	    AsyncBuffer:  256,
//	    WriteTimeout: 5 * time.Second,
//	})
//	defer rec.Close()
//
//	rec.Record(ctx, &journal.Entry{
//	    App:        "firefox",
//	    UsageBytes: usage,
//	    LimitBytes: limit,
//	    Notifier:   "desktop",
//	    Outcome:    journal.OutcomeDelivered,
//	})
//
// # Thread Safety
//
// Record may be called concurrently from multiple goroutines. The background
// goroutine is the only writer to storage.
package recorder
