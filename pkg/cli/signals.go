package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a context cancelled on the first SIGINT or
// SIGTERM. The daemon uses the cancellation to stop its loops and run the
// final state save; a second signal kills the process the default way.
func SetupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		signal.Stop(sigChan)
	}()

	return ctx
}

// WaitForShutdown returns a channel that receives SIGINT and SIGTERM, for
// callers that want the signal value itself rather than a context.
func WaitForShutdown() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	return sigChan
}
