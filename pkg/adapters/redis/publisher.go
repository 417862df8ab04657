package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/afterglow/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Publisher broadcasts tracker notifications as JSON on a Redis channel.
//
// Hooks only enqueue; Run performs the network calls, so a slow Redis never
// holds up the tracker. When the queue is full, notifications are dropped.
type Publisher struct {
	client  *backend.Client
	channel string
	logger  *slog.Logger
	queue   chan pending
}

type pending struct {
	ctx context.Context
	n   domain.Notification
}

// NewPublisher creates a publisher on DefaultNotifyChannel unless overridden.
func NewPublisher(client *backend.Client, opts ...Option) *Publisher {
	s := newSettings(DefaultNotifyChannel, opts)
	return &Publisher{
		client:  client,
		channel: s.channel,
		logger:  s.logger,
		queue:   make(chan pending, s.queueSize),
	}
}

// Channel returns the channel notifications are published on.
func (p *Publisher) Channel() string {
	return p.channel
}

// Publish sends one notification synchronously.
func (p *Publisher) Publish(ctx context.Context, n domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish to %s failed: %w", p.channel, err)
	}
	return nil
}

// Run publishes queued notifications until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case item := <-p.queue:
			if err := p.Publish(item.ctx, item.n); err != nil {
				p.logger.Error("failed to publish notification", "type", item.n.Type, "id", item.n.ID, "err", err)
			}
		}
	}
}

// Hooks returns tracker hooks that enqueue every notification for Run.
// The triggering context's values are kept but its cancellation is not.
func (p *Publisher) Hooks() domain.TrackerHooks {
	return domain.NotificationHooks(func(ctx context.Context, n domain.Notification) {
		select {
		case p.queue <- pending{ctx: context.WithoutCancel(ctx), n: n}:
		default:
			p.logger.Warn("redis publish queue full, dropping notification", "type", n.Type, "id", n.ID)
		}
	})
}
