// Package commands provides the eventctl CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags
var (
	redisURL string
	disabled bool
)

var rootCmd = &cobra.Command{
	Use:   "eventctl",
	Short: "Publish and inspect in-process events",
	Long: `eventctl wires an event publisher the way an application would and lets
you publish events from the command line.

When REDIS_URL (or --redis-url) is set, published events are also relayed
to Redis pub/sub so they can be watched and counted from another shell.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis-url", "", "Redis URL for the relay (overrides REDIS_URL)")
	rootCmd.PersistentFlags().BoolVar(&disabled, "disabled", false, "Start the publisher disabled")

	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(countsCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
