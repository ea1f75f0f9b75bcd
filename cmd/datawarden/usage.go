package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"datawarden-hq/vigil/pkg/cli"
	"datawarden-hq/vigil/pkg/config"
)

var usageFlags struct {
	top    int
	output string
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Print accumulated per-application usage totals",
	Long: `Print the usage totals from the persisted ledger, largest first.

The command reads the same store the daemon persists to, so it shows the
totals as of the daemon's last persist tick (or its shutdown save).

Examples:
  # Top ten applications by accumulated I/O
  datawarden usage --top 10

  # All applications as JSON
  datawarden usage --output json`,
	RunE: runUsage,
}

func init() {
	rootCmd.AddCommand(usageCmd)

	usageCmd.Flags().IntVar(&usageFlags.top, "top", 0, "show only the N largest applications (0 = all)")
	usageCmd.Flags().StringVarP(&usageFlags.output, "output", "o", "text", "output format (text, json, csv)")
}

func runUsage(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(usageFlags.output)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	backend, err := buildStoreBackend(&cfg.Store)
	if err != nil {
		return cli.NewCommandError("usage", err)
	}
	defer backend.Close()

	totals, err := backend.Load(cmd.Context())
	if err != nil {
		return cli.NewCommandError("usage", err)
	}

	table := usageTable(totals, usageFlags.top)
	return cli.NewFormatter(format).FormatTo(os.Stdout, table)
}

// usageTable renders totals as a table sorted by usage descending, name
// ascending on ties, truncated to top entries when top > 0.
func usageTable(totals map[string]uint64, top int) *cli.Table {
	type row struct {
		app   string
		bytes uint64
	}

	rows := make([]row, 0, len(totals))
	for app, bytes := range totals {
		rows = append(rows, row{app, bytes})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].bytes != rows[j].bytes {
			return rows[i].bytes > rows[j].bytes
		}
		return rows[i].app < rows[j].app
	})

	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	table := &cli.Table{Headers: []string{"APP", "USAGE", "BYTES"}}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.app,
			humanize.IBytes(r.bytes),
			strconv.FormatUint(r.bytes, 10),
		})
	}
	return table
}
