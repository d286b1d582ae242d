// Package event implements a topic based, in-process event publisher.
//
// Producers publish named events, listeners registered for that name run
// synchronously on the caller's goroutine in priority order, and any listener
// can stop the remaining ones from running.
//
// # Priorities
//
// Lower values run first. Listeners sharing a priority run in the order they
// were added.
//
//	PriorityHighest (1)
//	PriorityHigh    (2)
//	PriorityNormal  (3) - default
//	PriorityLow     (4)
//	PriorityLowest  (5)
//
// # Basic Usage
//
//	pub := event.NewPublisher(nil)
//
//	audit := event.Func(func(ctx context.Context, e *event.Event, p *event.Publisher) error {
//	    log.Printf("saving %v", e.Get("id"))
//	    return nil
//	})
//	if err := pub.AddListener("before.save", audit, event.PriorityNormal); err != nil {
//	    return err
//	}
//
//	e, err := pub.Publish(ctx, "before.save", map[string]any{"id": 42}, record)
//
// Publish returns a nil event and a nil error when the publisher is disabled.
//
// # Lazy Subscribers
//
// A SubscriberFactory configured on the publisher is asked to attach listeners
// for a topic right before that topic is dispatched, so subscribers that are
// never needed are never wired. See package subscriber for the default one.
//
// # Errors
//
// Malformed topics and listeners are rejected with an invalid argument error
// before anything runs. An error returned by a listener is handed back to the
// caller of Publish unchanged and the listeners after it are skipped.
//
// # Concurrency
//
// Dispatch happens on a snapshot of the listener list taken after the
// subscriber factory ran, without holding any lock. Listeners may publish
// again or change registrations; changes only affect later publishes.
package event
