package redis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Subscriber feeds upstream events published on a Redis channel into a tracker.
type Subscriber struct {
	client  *backend.Client
	applier ports.EventApplier
	channel string
	logger  *slog.Logger

	readyOnce sync.Once
	ready     chan struct{}
}

// NewSubscriber creates a subscriber on DefaultEventsChannel unless overridden.
func NewSubscriber(client *backend.Client, applier ports.EventApplier, opts ...Option) *Subscriber {
	s := newSettings(DefaultEventsChannel, opts)
	return &Subscriber{
		client:  client,
		applier: applier,
		channel: s.channel,
		logger:  s.logger,
		ready:   make(chan struct{}),
	}
}

// Channel returns the subscribed channel name.
func (s *Subscriber) Channel() string {
	return s.channel
}

// Ready is closed once the subscription is confirmed by the server.
func (s *Subscriber) Ready() <-chan struct{} {
	return s.ready
}

// Run consumes messages until ctx is cancelled.
// Messages that cannot be parsed or applied are logged and skipped.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe to %s failed: %w", s.channel, err)
	}
	s.readyOnce.Do(func() { close(s.ready) })
	s.logger.Info("subscribed to events", "channel", s.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.handle(ctx, msg.Payload)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, payload string) {
	evt, err := domain.ParseEvent([]byte(payload))
	if err != nil {
		s.logger.Warn("dropping malformed event", "channel", s.channel, "err", err)
		return
	}
	if err := s.applier.Apply(ctx, evt); err != nil {
		s.logger.Warn("dropping event", "type", evt.Type, "err", err)
		return
	}
	s.logger.Debug("applied event", "type", evt.Type)
}
