package event

//go:generate mockgen -destination=mock/mock_subscriber_factory.go -package=mockevent -source=factory.go SubscriberFactory

import "context"

// SubscriberFactory attaches listeners for a topic just before it is dispatched.
// It is called on every publish, so implementations must not attach the same
// listeners twice; the registry does not deduplicate.
type SubscriberFactory interface {
	SubscribeEvent(ctx context.Context, topic string, publisher *Publisher) error
}

// SubscriberFactoryFunc adapts a function to SubscriberFactory
type SubscriberFactoryFunc func(ctx context.Context, topic string, publisher *Publisher) error

// SubscribeEvent calls f
func (f SubscriberFactoryFunc) SubscribeEvent(ctx context.Context, topic string, publisher *Publisher) error {
	return f(ctx, topic, publisher)
}
