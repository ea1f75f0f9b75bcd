/*
Package cli provides command-line helpers for the datawarden binary.

The package contains the output formatters shared by the reporting
subcommands and the signal plumbing used by the daemon.

Output Formatting:

Reporting commands render tabular results (usage totals, journal entries)
in text, JSON, or CSV form:

	table := &cli.Table{
		Headers: []string{"APP", "USAGE"},
		Rows:    [][]string{{"browser", "1.2 GiB"}},
	}
	formatter := cli.NewFormatter(cli.FormatText)
	if err := formatter.FormatTo(os.Stdout, table); err != nil {
		return err
	}

Signal Handling:

The run command uses SetupSignalHandler to turn SIGINT/SIGTERM into
context cancellation for a graceful shutdown:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
