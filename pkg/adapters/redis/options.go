package redis

import (
	"log/slog"

	"github.com/aretw0/afterglow/internal/logging"
)

const (
	// DefaultEventsChannel carries upstream events into the tracker.
	DefaultEventsChannel = "afterglow:events"
	// DefaultNotifyChannel carries tracker notifications out.
	DefaultNotifyChannel = "afterglow:notifications"
	// DefaultQueueSize bounds the notifications waiting to be published.
	DefaultQueueSize = 256
)

type settings struct {
	channel   string
	logger    *slog.Logger
	queueSize int
}

// Option configures a Subscriber or a Publisher.
type Option func(*settings)

// WithChannel overrides the pub/sub channel.
func WithChannel(channel string) Option {
	return func(s *settings) {
		if channel != "" {
			s.channel = channel
		}
	}
}

// WithLogger sets the logger used to report dropped messages and publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQueueSize bounds the Publisher queue. Non-positive values are ignored.
func WithQueueSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

func newSettings(channel string, opts []Option) settings {
	s := settings{
		channel:   channel,
		logger:    logging.NewNop(),
		queueSize: DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
