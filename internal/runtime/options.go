package runtime

import (
	"log/slog"

	"github.com/aretw0/afterglow/pkg/domain"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithHooks registers the synchronous change callbacks.
func WithHooks(hooks domain.TrackerHooks) Option {
	return func(t *Tracker) {
		t.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithHistorySize overrides DefaultHistorySize.
func WithHistorySize(n int) Option {
	return func(t *Tracker) {
		t.SetHistorySize(n)
	}
}
