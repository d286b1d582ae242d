package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/eventpublisher/internal/config"
	"github.com/KirkDiggler/eventpublisher/internal/event"
	"github.com/KirkDiggler/eventpublisher/internal/relay"
	"github.com/KirkDiggler/eventpublisher/internal/subscriber"
	"github.com/KirkDiggler/eventpublisher/internal/uuid"
)

// app holds everything a command needs
type app struct {
	logger    *zap.Logger
	factory   *subscriber.Factory
	publisher *event.Publisher
	relay     *relay.Relay
	client    *redis.Client
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if redisURL != "" {
		cfg.Redis.URL = redisURL
	}
	if disabled {
		cfg.Publisher.Enabled = false
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.Log.Level)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a := &app{logger: logger}
	a.factory = subscriber.NewFactory(&subscriber.FactoryConfig{Logger: logger})
	a.publisher = event.NewPublisher(&event.PublisherConfig{
		Disabled:          !cfg.Publisher.Enabled,
		SubscriberFactory: a.factory,
		Logger:            logger,
		IDGenerator:       uuid.NewGoogleUUIDGenerator(),
	})

	if cfg.Redis.URL == "" {
		logger.Debug("no redis url, relay disabled")
		return a, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	a.client = redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.client.Ping(pingCtx).Err(); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	a.relay, err = relay.New(&relay.Config{
		Client: a.client,
		Prefix: cfg.Redis.Prefix,
		Logger: logger,
	})
	if err != nil {
		a.close()
		return nil, err
	}

	logger.Info("relaying events to redis", zap.String("addr", opts.Addr))
	return a, nil
}

func (a *app) requireRelay() error {
	if a.relay == nil {
		return fmt.Errorf("this command needs redis: set REDIS_URL or --redis-url")
	}
	return nil
}

func (a *app) close() {
	if a.factory.Detach(a.publisher) {
		a.logger.Debug("publisher detached from subscriber factory")
	}
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
