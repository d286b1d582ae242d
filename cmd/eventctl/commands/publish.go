package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/eventpublisher/internal/event"
)

var (
	publishHalt   bool
	publishRepeat int
)

var publishCmd = &cobra.Command{
	Use:   "publish <topic> [key=value...]",
	Short: "Publish one event",
	Long: `Publish an event and print it once every listener ran.

Examples:
  eventctl publish before.save user=alice rows=3
  eventctl publish --halt before.save      # a highest priority listener stops propagation
  eventctl --disabled publish before.save  # nothing is dispatched`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishHalt, "halt", false, "Stop propagation before the printer runs")
	publishCmd.Flags().IntVarP(&publishRepeat, "repeat", "n", 1, "Number of times to publish")
}

// printer writes every event it receives as one JSON line
type printer struct {
	w io.Writer
}

func (p *printer) HandleEvent(_ context.Context, e *event.Event, _ *event.Publisher) error {
	data, err := json.Marshal(map[string]any{
		"id":         e.ID(),
		"name":       e.Name(),
		"attributes": e.Attributes(),
	})
	if err != nil {
		return fmt.Errorf("failed to print event: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

func runPublish(cmd *cobra.Command, args []string) error {
	topic := args[0]
	attrs, err := parseAttributes(args[1:])
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.factory.Subscribe(topic, &printer{w: cmd.OutOrStdout()}, event.PriorityLowest); err != nil {
		return err
	}
	if a.relay != nil {
		if err := a.relay.Attach(a.publisher, event.PriorityLow, topic); err != nil {
			return err
		}
	}
	if publishHalt {
		halt := event.Func(func(_ context.Context, e *event.Event, _ *event.Publisher) error {
			e.Set("halted", true)
			e.StopPropagation()
			return nil
		})
		if err := a.factory.Subscribe(topic, halt, event.PriorityHighest); err != nil {
			return err
		}
	}

	for i := 0; i < publishRepeat; i++ {
		// Each publish gets its own copy so listeners never share state across runs
		copied := event.NewAttributes(nil)
		copied.Merge(attrs)

		e, err := a.publisher.Dispatch(cmd.Context(), topic, copied, nil)
		if err != nil {
			return err
		}
		if e == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "publisher is disabled, nothing was dispatched")
			return nil
		}
		if !e.CanPropagate() {
			fmt.Fprintf(cmd.ErrOrStderr(), "event %s was halted\n", e.ID())
		}
	}
	return nil
}
