package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/eventpublisher/internal/errors"
	"github.com/KirkDiggler/eventpublisher/internal/uuid"
)

// PublisherConfig holds the collaborators of a Publisher. Every field is optional.
type PublisherConfig struct {
	// Disabled starts the publisher disabled
	Disabled bool

	// SubscriberFactory lazily attaches listeners before each publish
	SubscriberFactory SubscriberFactory

	Logger      *zap.Logger
	IDGenerator uuid.Generator
}

// Publisher dispatches events to the listeners of its registry
type Publisher struct {
	mu       sync.RWMutex
	enabled  bool
	registry *Registry
	factory  SubscriberFactory
	logger   *zap.Logger
	ids      uuid.Generator
}

// NewPublisher creates a publisher. cfg may be nil.
func NewPublisher(cfg *PublisherConfig) *Publisher {
	if cfg == nil {
		cfg = &PublisherConfig{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ids := cfg.IDGenerator
	if ids == nil {
		ids = defaultIDs
	}

	return &Publisher{
		enabled:  !cfg.Disabled,
		registry: NewRegistry(),
		factory:  cfg.SubscriberFactory,
		logger:   logger.Named("publisher"),
		ids:      ids,
	}
}

// Enable turns dispatching on
func (p *Publisher) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = true
}

// Disable turns dispatching off. Listeners stay registered.
func (p *Publisher) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
}

// IsEnabled reports whether Publish dispatches
func (p *Publisher) IsEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enabled
}

// Publish creates an event named topic and dispatches it.
// It returns a nil event and a nil error when the publisher is disabled.
func (p *Publisher) Publish(ctx context.Context, topic string, attributes map[string]any, target any) (*Event, error) {
	if !p.gate(topic) {
		return nil, nil
	}
	if err := validateTopic(topic); err != nil {
		return nil, err
	}

	return p.dispatch(ctx, newEvent(p.ids.New(), topic, NewAttributes(attributes), target))
}

// PublishEvent dispatches an existing event under its own name
func (p *Publisher) PublishEvent(ctx context.Context, event *Event) (*Event, error) {
	var topic string
	if event != nil {
		topic = event.Name()
	}
	if !p.gate(topic) {
		return nil, nil
	}
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	return p.dispatch(ctx, event)
}

// PublishAs renames event to topic and dispatches it
func (p *Publisher) PublishAs(ctx context.Context, topic string, event *Event) (*Event, error) {
	if !p.gate(topic) {
		return nil, nil
	}
	if err := validateTopic(topic); err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.InvalidArgument("the event must not be nil").WithCause(ErrInvalidEvent)
	}

	event.SetName(topic)
	return p.dispatch(ctx, event)
}

// Dispatch publishes from loosely typed arguments.
//
// eventOrTopic is a topic string or an *Event. When it is a string,
// attributes is either an *Event, which is renamed and published, or the
// attributes of a new event as nil, map[string]any or *Attributes.
// When eventOrTopic is an *Event, attributes and target are ignored.
func (p *Publisher) Dispatch(ctx context.Context, eventOrTopic any, attributes any, target any) (*Event, error) {
	switch v := eventOrTopic.(type) {
	case *Event:
		return p.PublishEvent(ctx, v)
	case string:
		if !p.gate(v) {
			return nil, nil
		}
		if err := validateTopic(v); err != nil {
			return nil, err
		}

		switch attrs := attributes.(type) {
		case *Event:
			return p.PublishAs(ctx, v, attrs)
		case nil:
			return p.dispatch(ctx, newEvent(p.ids.New(), v, nil, target))
		case map[string]any:
			return p.dispatch(ctx, newEvent(p.ids.New(), v, NewAttributes(attrs), target))
		case *Attributes:
			return p.dispatch(ctx, newEvent(p.ids.New(), v, attrs, target))
		default:
			return nil, errors.InvalidArgumentf("the attributes must be a map, *Attributes or *Event, %T given", attributes).
				WithCause(ErrInvalidEvent)
		}
	default:
		if !p.gate("") {
			return nil, nil
		}
		return nil, errors.InvalidArgumentf("the event must be a string or *Event, %T given", eventOrTopic).
			WithCause(ErrInvalidEvent)
	}
}

func (p *Publisher) gate(topic string) bool {
	if p.IsEnabled() {
		return true
	}
	p.logger.Debug("publisher disabled, event skipped", zap.String("topic", topic))
	return false
}

func (p *Publisher) dispatch(ctx context.Context, event *Event) (*Event, error) {
	if p.factory != nil {
		if err := p.factory.SubscribeEvent(ctx, event.Name(), p); err != nil {
			return nil, err
		}
	}

	listeners := p.registry.snapshot(event.Name())

	for i, listener := range listeners {
		if err := listener.HandleEvent(ctx, event, p); err != nil {
			p.logger.Debug("listener failed",
				zap.String("topic", event.Name()),
				zap.String("event_id", event.ID()),
				zap.Int("position", i),
				zap.Error(err))
			return nil, err
		}

		if !event.CanPropagate() {
			p.logger.Debug("propagation stopped",
				zap.String("topic", event.Name()),
				zap.String("event_id", event.ID()),
				zap.Int("ran", i+1),
				zap.Int("skipped", len(listeners)-i-1))
			break
		}
	}

	return event, nil
}

// AddListener registers listener for topic at priority
func (p *Publisher) AddListener(topic string, listener Listener, priority Priority) error {
	return p.registry.Add(topic, listener, priority)
}

// RemoveListener unregisters listener from topic. Unknown pairs are ignored.
func (p *Publisher) RemoveListener(topic string, listener Listener) error {
	return p.registry.Remove(topic, listener)
}

// Listeners returns the listeners of topic in dispatch order
func (p *Publisher) Listeners(topic string) ([]Listener, error) {
	return p.registry.List(topic)
}

// SetListenerPriority moves listener to another priority group of topic
func (p *Publisher) SetListenerPriority(topic string, listener Listener, priority Priority) error {
	return p.registry.SetPriority(topic, listener, priority)
}

// ListenerPriority returns the priority of listener under topic and whether it is registered
func (p *Publisher) ListenerPriority(topic string, listener Listener) (Priority, bool, error) {
	return p.registry.Priority(topic, listener)
}

// Topics returns the topics with registered listeners
func (p *Publisher) Topics() []string {
	return p.registry.Topics()
}
