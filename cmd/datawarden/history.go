package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"datawarden-hq/vigil/pkg/cli"
	"datawarden-hq/vigil/pkg/config"
	"datawarden-hq/vigil/pkg/journal"
	journalstorage "datawarden-hq/vigil/pkg/journal/storage"
)

var historyFlags struct {
	app     string
	outcome string
	since   string
	until   string
	limit   int
	offset  int
	output  string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the alert attempt journal",
	Long: `Query recorded alert attempts, newest first.

Requires the alert journal to be enabled with the sqlite backend; entries
written to the memory backend do not survive the daemon.

Time filters accept RFC 3339 timestamps ("2026-08-30T12:00:00Z"), plain
dates ("2026-08-30"), or a look-back duration ("24h", "30m").

Examples:
  # Last 20 attempts
  datawarden history --limit 20

  # Failed deliveries for one application in the last day
  datawarden history --app browser --outcome failed --since 24h`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyFlags.app, "app", "", "filter by application name")
	historyCmd.Flags().StringVar(&historyFlags.outcome, "outcome", "", "filter by outcome (delivered, failed)")
	historyCmd.Flags().StringVar(&historyFlags.since, "since", "", "only attempts at or after this time")
	historyCmd.Flags().StringVar(&historyFlags.until, "until", "", "only attempts at or before this time")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 50, "maximum number of entries (0 = no limit)")
	historyCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "skip the first N matching entries")
	historyCmd.Flags().StringVarP(&historyFlags.output, "output", "o", "text", "output format (text, json, csv)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(historyFlags.output)
	if err != nil {
		return err
	}

	query := &journal.Query{
		App:     historyFlags.app,
		Outcome: historyFlags.outcome,
		Limit:   historyFlags.limit,
		Offset:  historyFlags.offset,
	}
	if historyFlags.since != "" {
		t, err := parseTimeFlag(historyFlags.since)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		query.Since = &t
	}
	if historyFlags.until != "" {
		t, err := parseTimeFlag(historyFlags.until)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		query.Until = &t
	}
	if err := query.Validate(); err != nil {
		return err
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	if !cfg.Alerts.Journal.Enabled {
		return cli.NewCommandError("history", fmt.Errorf("alert journal is not enabled in %s", cfgFile))
	}
	if cfg.Alerts.Journal.Backend != "sqlite" {
		return cli.NewCommandError("history", fmt.Errorf("journal backend %q keeps no history on disk", cfg.Alerts.Journal.Backend))
	}

	storage, err := journalstorage.NewSQLiteStorage(&journalstorage.SQLiteConfig{
		Path:         cfg.Alerts.Journal.SQLite.Path,
		MaxOpenConns: cfg.Alerts.Journal.SQLite.MaxOpenConns,
		MaxIdleConns: cfg.Alerts.Journal.SQLite.MaxIdleConns,
		BusyTimeout:  cfg.Alerts.Journal.SQLite.BusyTimeout,
	})
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer storage.Close()

	entries, err := storage.Query(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	return cli.NewFormatter(format).FormatTo(os.Stdout, historyTable(entries))
}

// parseTimeFlag turns a --since/--until value into a timestamp. Durations
// are interpreted as a look-back from now.
func parseTimeFlag(s string) (time.Time, error) {
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return time.Time{}, fmt.Errorf("look-back duration must be positive, got %s", s)
		}
		return time.Now().Add(-d), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want RFC 3339, a date, or a duration)", s)
}

// historyTable renders journal entries for display. Entries arrive newest
// first from storage and keep that order.
func historyTable(entries []*journal.Entry) *cli.Table {
	table := &cli.Table{
		Headers: []string{"TIME", "APP", "USAGE", "LIMIT", "NOTIFIER", "OUTCOME", "ERROR"},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			e.Time.Local().Format(time.RFC3339),
			e.App,
			humanize.IBytes(e.UsageBytes),
			humanize.IBytes(e.LimitBytes),
			e.Notifier,
			e.Outcome,
			e.Error,
		})
	}
	return table
}
