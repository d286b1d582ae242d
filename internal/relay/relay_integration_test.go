//go:build integration
// +build integration

package relay_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/eventpublisher/internal/event"
	"github.com/KirkDiggler/eventpublisher/internal/relay"
	"github.com/KirkDiggler/eventpublisher/internal/subscriber"
	"github.com/KirkDiggler/eventpublisher/internal/testutils"
)

func TestRelay_Integration(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r, err := relay.New(&relay.Config{Client: client})
	require.NoError(t, err)

	factory := subscriber.NewFactory(nil)
	require.NoError(t, factory.Subscribe("after.save", r, event.PriorityLowest))
	pub := event.NewPublisher(&event.PublisherConfig{SubscriberFactory: factory})

	sub := r.Subscribe(ctx, "after.save")
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	published, err := pub.Publish(ctx, "after.save", map[string]any{"user": "alice"}, nil)
	require.NoError(t, err)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "events:after.save", msg.Channel)

	env, err := relay.DecodeEnvelope(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, published.ID(), env.ID)
	assert.Equal(t, "alice", env.Attributes["user"])

	_, err = pub.Publish(ctx, "after.save", nil, nil)
	require.NoError(t, err)

	counts, err := r.Counts(ctx, "after.save", "before.save")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["after.save"])
	assert.Equal(t, int64(0), counts["before.save"])
}
