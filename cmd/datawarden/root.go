package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "datawarden",
	Short: "Datawarden Vigil - per-application disk I/O monitor",
	Long: `Datawarden Vigil is a background service that tracks how much disk I/O
each application performs over time.

It samples the process table on a fixed cadence, accumulates attributable
usage per application into a persisted ledger, and raises a rate-limited
desktop alert when an application crosses its configured byte limit. Every
alert attempt can be journaled with its delivery outcome for later review.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
