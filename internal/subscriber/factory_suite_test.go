package subscriber_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	apperrors "github.com/KirkDiggler/eventpublisher/internal/errors"
	"github.com/KirkDiggler/eventpublisher/internal/event"
	"github.com/KirkDiggler/eventpublisher/internal/subscriber"
)

// auditSubscriber is a typical subscriber: one value owning several listeners
type auditSubscriber struct {
	entries []string
}

func (a *auditSubscriber) Subscriptions() []subscriber.Subscription {
	return []subscriber.Subscription{
		{Topic: "before.save", Listener: event.Func(a.record("before")), Priority: event.PriorityHigh},
		{Topic: "after.save", Listener: event.Func(a.record("after"))},
	}
}

func (a *auditSubscriber) record(label string) event.ListenerFunc {
	return func(_ context.Context, e *event.Event, _ *event.Publisher) error {
		a.entries = append(a.entries, label+":"+e.Name())
		return nil
	}
}

type FactorySuite struct {
	suite.Suite
	ctx     context.Context
	factory *subscriber.Factory
	pub     *event.Publisher
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) SetupTest() {
	s.ctx = context.Background()
	s.factory = subscriber.NewFactory(nil)
	s.pub = event.NewPublisher(&event.PublisherConfig{SubscriberFactory: s.factory})
}

func (s *FactorySuite) TestNothingAttachedBeforePublish() {
	s.Require().NoError(s.factory.Register(&auditSubscriber{}))

	s.Empty(s.pub.Topics())
	s.Equal([]string{"after.save", "before.save"}, s.factory.Topics())
}

func (s *FactorySuite) TestAttachesOnlyPublishedTopic() {
	audit := &auditSubscriber{}
	s.Require().NoError(s.factory.Register(audit))

	_, err := s.pub.Publish(s.ctx, "before.save", nil, nil)
	s.Require().NoError(err)

	s.Equal([]string{"before:before.save"}, audit.entries)
	s.Equal([]string{"before.save"}, s.pub.Topics())
}

func (s *FactorySuite) TestAttachIsIdempotent() {
	audit := &auditSubscriber{}
	s.Require().NoError(s.factory.Register(audit))

	for i := 0; i < 3; i++ {
		_, err := s.pub.Publish(s.ctx, "after.save", nil, nil)
		s.Require().NoError(err)
	}

	listeners, err := s.pub.Listeners("after.save")
	s.Require().NoError(err)
	s.Len(listeners, 1)
	s.Len(audit.entries, 3)
}

func (s *FactorySuite) TestDeclaredPriorityIsUsed() {
	audit := &auditSubscriber{}
	s.Require().NoError(s.factory.Register(audit))
	_, err := s.pub.Publish(s.ctx, "after.save", nil, nil)
	s.Require().NoError(err)
	_, err = s.pub.Publish(s.ctx, "before.save", nil, nil)
	s.Require().NoError(err)

	listeners, err := s.pub.Listeners("before.save")
	s.Require().NoError(err)
	s.Require().Len(listeners, 1)
	priority, ok, err := s.pub.ListenerPriority("before.save", listeners[0])
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(event.PriorityHigh, priority)

	listeners, err = s.pub.Listeners("after.save")
	s.Require().NoError(err)
	s.Require().Len(listeners, 1)
	priority, _, err = s.pub.ListenerPriority("after.save", listeners[0])
	s.Require().NoError(err)
	s.Equal(event.PriorityNormal, priority)
}

func (s *FactorySuite) TestLateRegistrationIsAttachedOnNextPublish() {
	var order []string
	first := event.Func(func(context.Context, *event.Event, *event.Publisher) error {
		order = append(order, "first")
		return nil
	})
	second := event.Func(func(context.Context, *event.Event, *event.Publisher) error {
		order = append(order, "second")
		return nil
	})

	s.Require().NoError(s.factory.Subscribe("save", first, event.PriorityNormal))
	_, err := s.pub.Publish(s.ctx, "save", nil, nil)
	s.Require().NoError(err)

	s.Require().NoError(s.factory.Subscribe("save", second, event.PriorityHighest))
	_, err = s.pub.Publish(s.ctx, "save", nil, nil)
	s.Require().NoError(err)

	s.Equal([]string{"first", "second", "first"}, order)
}

func (s *FactorySuite) TestPublishersAreTrackedSeparately() {
	audit := &auditSubscriber{}
	s.Require().NoError(s.factory.Register(audit))
	other := event.NewPublisher(&event.PublisherConfig{SubscriberFactory: s.factory})

	_, err := s.pub.Publish(s.ctx, "after.save", nil, nil)
	s.Require().NoError(err)
	_, err = other.Publish(s.ctx, "after.save", nil, nil)
	s.Require().NoError(err)

	s.Equal([]string{"after:after.save", "after:after.save"}, audit.entries)
}

func (s *FactorySuite) TestDetachAllowsReattach() {
	s.Require().NoError(s.factory.Register(&auditSubscriber{}))
	_, err := s.pub.Publish(s.ctx, "after.save", nil, nil)
	s.Require().NoError(err)

	s.True(s.factory.Detach(s.pub))
	s.False(s.factory.Detach(s.pub), "a detached publisher is no longer tracked")

	_, err = s.pub.Publish(s.ctx, "after.save", nil, nil)
	s.Require().NoError(err)

	listeners, err := s.pub.Listeners("after.save")
	s.Require().NoError(err)
	s.Len(listeners, 2, "the registry does not deduplicate")
}

func (s *FactorySuite) TestDetachUnknownPublisher() {
	other := event.NewPublisher(nil)
	s.False(s.factory.Detach(other))
}

func (s *FactorySuite) TestRegisterValidation() {
	s.True(apperrors.IsInvalidArgument(s.factory.Register(nil)))

	err := s.factory.Register(subscriber.SubscriberFunc(func() []subscriber.Subscription {
		return []subscriber.Subscription{
			{Topic: "ok", Listener: event.Func(func(context.Context, *event.Event, *event.Publisher) error { return nil })},
			{Topic: "", Listener: nil},
		}
	}))
	s.True(apperrors.IsInvalidArgument(err))
	s.Empty(s.factory.Topics(), "a rejected subscriber must not be partially declared")

	s.True(apperrors.IsInvalidArgument(s.factory.Subscribe("save", nil, event.PriorityNormal)))
}

func (s *FactorySuite) TestAttachFailureIsReported() {
	fn := event.ListenerFunc(func(context.Context, *event.Event, *event.Publisher) error { return nil })
	s.Require().NoError(s.factory.Subscribe("save", fn, event.PriorityNormal))

	_, err := s.pub.Publish(s.ctx, "save", nil, nil)
	s.True(apperrors.IsInvalidArgument(err))
}

func (s *FactorySuite) TestNilPublisher() {
	s.True(apperrors.IsInvalidArgument(s.factory.SubscribeEvent(s.ctx, "save", nil)))
}
