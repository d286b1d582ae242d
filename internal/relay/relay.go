// Package relay mirrors published events onto Redis pub/sub channels so
// other processes can observe them. The relay is an ordinary listener: it
// runs in the dispatch loop and its errors abort the publish like any other.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/KirkDiggler/eventpublisher/internal/errors"
	"github.com/KirkDiggler/eventpublisher/internal/event"
)

const (
	// DefaultPrefix is prepended to channel names and counter keys
	DefaultPrefix = "events:"

	counterSegment = "count:"
)

// Config holds the dependencies of a Relay
type Config struct {
	Client       redis.UniversalClient
	Prefix       string
	TimeProvider TimeProvider
	Logger       *zap.Logger
}

// Relay is an event.Listener that publishes every event it receives to
// <prefix><topic> and counts them under <prefix>count:<topic>.
type Relay struct {
	client       redis.UniversalClient
	prefix       string
	timeProvider TimeProvider
	logger       *zap.Logger
}

// Envelope is the JSON message sent on a channel
type Envelope struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Attributes  map[string]any `json:"attributes"`
	PublishedAt time.Time      `json:"published_at"`
}

// outgoing keeps attribute order on the wire
type outgoing struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Attributes  *event.Attributes `json:"attributes"`
	PublishedAt time.Time         `json:"published_at"`
}

// New creates a relay
func New(cfg *Config) (*Relay, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, apperrors.InvalidArgument("redis client is required")
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	var timeProvider TimeProvider = realTimeProvider{}
	if cfg.TimeProvider != nil {
		timeProvider = cfg.TimeProvider
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Relay{
		client:       cfg.Client,
		prefix:       prefix,
		timeProvider: timeProvider,
		logger:       logger.Named("relay"),
	}, nil
}

// Channel returns the pub/sub channel used for topic
func (r *Relay) Channel(topic string) string {
	return r.prefix + topic
}

func (r *Relay) counterKey(topic string) string {
	return r.prefix + counterSegment + topic
}

// HandleEvent implements event.Listener
func (r *Relay) HandleEvent(ctx context.Context, e *event.Event, _ *event.Publisher) error {
	data, err := json.Marshal(outgoing{
		ID:          e.ID(),
		Name:        e.Name(),
		Attributes:  e.Attributes(),
		PublishedAt: r.timeProvider.Now(),
	})
	if err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeInternal, fmt.Sprintf("failed to marshal event %s", e.Name()))
	}

	pipe := r.client.Pipeline()
	pipe.Publish(ctx, r.Channel(e.Name()), string(data))
	pipe.Incr(ctx, r.counterKey(e.Name()))
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.WrapWithCode(err, apperrors.CodeInternal, fmt.Sprintf("failed to relay event %s", e.Name()))
	}

	r.logger.Debug("relayed event",
		zap.String("topic", e.Name()),
		zap.String("event_id", e.ID()))
	return nil
}

// Attach registers the relay on every topic at priority
func (r *Relay) Attach(publisher *event.Publisher, priority event.Priority, topics ...string) error {
	for _, topic := range topics {
		if err := publisher.AddListener(topic, r, priority); err != nil {
			return err
		}
	}
	return nil
}

// Counts returns how many events were relayed per topic. Topics never
// relayed count as zero.
func (r *Relay) Counts(ctx context.Context, topics ...string) (map[string]int64, error) {
	counts := make([]int64, len(topics))

	g, ctx := errgroup.WithContext(ctx)
	for i, topic := range topics {
		g.Go(func() error {
			n, err := r.client.Get(ctx, r.counterKey(topic)).Int64()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return nil
				}
				return apperrors.WrapWithCode(err, apperrors.CodeInternal, fmt.Sprintf("failed to get count for %s", topic))
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(topics))
	for i, topic := range topics {
		result[topic] = counts[i]
	}
	return result, nil
}

// Subscribe opens a pub/sub subscription on the channels of topics
func (r *Relay) Subscribe(ctx context.Context, topics ...string) *redis.PubSub {
	channels := make([]string, len(topics))
	for i, topic := range topics {
		channels[i] = r.Channel(topic)
	}
	return r.client.Subscribe(ctx, channels...)
}

// DecodeEnvelope parses a message payload produced by HandleEvent
func DecodeEnvelope(payload string) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return nil, apperrors.WrapWithCode(err, apperrors.CodeInvalidArgument, "failed to unmarshal envelope")
	}
	return &env, nil
}
