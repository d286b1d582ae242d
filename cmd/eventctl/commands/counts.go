package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countsCmd = &cobra.Command{
	Use:   "counts <topic...>",
	Short: "Show how many events were relayed per topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.requireRelay(); err != nil {
			return err
		}

		counts, err := a.relay.Counts(cmd.Context(), args...)
		if err != nil {
			return err
		}
		for _, topic := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%-30s %d\n", topic, counts[topic])
		}
		return nil
	},
}
