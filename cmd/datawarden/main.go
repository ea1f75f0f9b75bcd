// Datawarden Vigil is a background monitor for per-application disk I/O.
//
// It samples the process table on a fixed cadence, accumulates attributable
// I/O per application into a persisted ledger, and raises a rate-limited
// desktop alert when an application crosses its configured byte limit.
//
// Usage:
//
//	# Start the daemon with default configuration
//	datawarden run
//
//	# Start with a custom configuration file
//	datawarden run --config /etc/datawarden/config.yaml
//
//	# Show version information
//	datawarden version
//
//	# Print accumulated usage totals from the persisted ledger
//	datawarden usage --top 10
//
//	# Query the alert attempt journal
//	datawarden history --app browser --outcome failed
package main

func main() {
	Execute()
}
