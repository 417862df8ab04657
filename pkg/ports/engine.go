package ports

import (
	"context"

	"github.com/aretw0/afterglow/pkg/domain"
)

// EventApplier consumes upstream events reported by an execution engine.
type EventApplier interface {
	Apply(ctx context.Context, evt domain.Event) error
}

// TrackerView is the read side consumed by visualization adapters.
type TrackerView interface {
	// Snapshot returns a consistent copy of all observable state.
	Snapshot() domain.Snapshot

	// StateActiveness scores a state by ID.
	StateActiveness(id string) (float64, error)

	// TransitionActiveness scores a transition by ID.
	TransitionActiveness(id string) (float64, error)

	// ActiveRegion returns the union rectangle of the active configuration.
	ActiveRegion() domain.Rect
}

// Observable registers synchronous change hooks.
type Observable interface {
	// Observe adds hooks and returns a function that removes them again.
	Observe(hooks domain.TrackerHooks) (remove func())
}

// Tracker is everything the transport adapters need.
type Tracker interface {
	EventApplier
	TrackerView
	Observable
}
