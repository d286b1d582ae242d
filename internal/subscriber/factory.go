// Package subscriber provides the default SubscriberFactory. Subscribers are
// declared up front and their listeners are attached to a publisher the first
// time one of their topics is published there.
package subscriber

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/eventpublisher/internal/errors"
	"github.com/KirkDiggler/eventpublisher/internal/event"
)

// Subscription declares one listener for one topic. A zero Priority means
// event.PriorityNormal.
type Subscription struct {
	Topic    string
	Listener event.Listener
	Priority event.Priority
}

// Subscriber declares the subscriptions it wants attached
type Subscriber interface {
	Subscriptions() []Subscription
}

// SubscriberFunc adapts a function to Subscriber
type SubscriberFunc func() []Subscription

// Subscriptions calls f
func (f SubscriberFunc) Subscriptions() []Subscription {
	return f()
}

type declaration struct {
	id int
	Subscription
}

// FactoryConfig holds optional collaborators of a Factory
type FactoryConfig struct {
	Logger *zap.Logger
}

// Factory implements event.SubscriberFactory. It is safe for concurrent use.
//
// The factory remembers every publisher it attached listeners to, which keeps
// those publishers reachable. Call Detach when a publisher is retired.
type Factory struct {
	mu       sync.Mutex
	nextID   int
	declared map[string][]declaration
	attached map[*event.Publisher]map[int]struct{}
	logger   *zap.Logger
}

// NewFactory creates an empty factory. cfg may be nil.
func NewFactory(cfg *FactoryConfig) *Factory {
	logger := zap.NewNop()
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}

	return &Factory{
		declared: make(map[string][]declaration),
		attached: make(map[*event.Publisher]map[int]struct{}),
		logger:   logger.Named("subscriber"),
	}
}

// Register declares the subscriptions of sub. Nothing is attached until a
// publisher publishes one of the topics. Either every subscription is
// declared or, on error, none is.
func (f *Factory) Register(sub Subscriber) error {
	if sub == nil {
		return errors.InvalidArgument("the subscriber must not be nil")
	}

	subs := sub.Subscriptions()
	for i, s := range subs {
		if s.Topic == "" {
			return errors.InvalidArgumentf("subscription %d has an empty topic", i)
		}
		if s.Listener == nil {
			return errors.InvalidArgumentf("subscription %d for %q has no listener", i, s.Topic)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range subs {
		if s.Priority == 0 {
			s.Priority = event.PriorityNormal
		}
		f.nextID++
		f.declared[s.Topic] = append(f.declared[s.Topic], declaration{id: f.nextID, Subscription: s})
	}
	return nil
}

// Subscribe declares a single listener
func (f *Factory) Subscribe(topic string, listener event.Listener, priority event.Priority) error {
	return f.Register(SubscriberFunc(func() []Subscription {
		return []Subscription{{Topic: topic, Listener: listener, Priority: priority}}
	}))
}

// SubscribeEvent attaches the declared listeners of topic that publisher does
// not have yet. Calling it again for the same publisher and topic is a no-op.
func (f *Factory) SubscribeEvent(_ context.Context, topic string, publisher *event.Publisher) error {
	if publisher == nil {
		return errors.InvalidArgument("the publisher must not be nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	done, ok := f.attached[publisher]
	if !ok {
		done = make(map[int]struct{})
		f.attached[publisher] = done
	}

	for _, d := range f.declared[topic] {
		if _, ok := done[d.id]; ok {
			continue
		}

		if err := publisher.AddListener(d.Topic, d.Listener, d.Priority); err != nil {
			return errors.Wrapf(err, "failed to attach subscription for %q", d.Topic)
		}
		done[d.id] = struct{}{}

		f.logger.Debug("attached subscription",
			zap.String("topic", d.Topic),
			zap.Stringer("priority", d.Priority))
	}
	return nil
}

// Detach forgets what was attached to publisher and releases the factory's
// reference to it. Its listeners stay registered; the next publish of a
// declared topic attaches them again. It reports whether publisher was tracked.
func (f *Factory) Detach(publisher *event.Publisher) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.attached[publisher]
	delete(f.attached, publisher)
	return ok
}

// Topics returns the topics with declared subscriptions, sorted
func (f *Factory) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	topics := make([]string, 0, len(f.declared))
	for topic := range f.declared {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}
