package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/eventpublisher/internal/relay"
)

var watchCmd = &cobra.Command{
	Use:   "watch <topic...>",
	Short: "Print events relayed to Redis until interrupted",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireRelay(); err != nil {
		return err
	}

	sub := a.relay.Subscribe(ctx, args...)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %v, press CTRL-C to exit\n", args)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			env, err := relay.DecodeEnvelope(msg.Payload)
			if err != nil {
				a.logger.Warn("skipping message", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %v\n",
				env.PublishedAt.Format("15:04:05.000"), env.Name, env.ID, env.Attributes)
		}
	}
}
