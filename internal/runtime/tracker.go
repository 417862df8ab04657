package runtime

import (
	"context"
	"log/slog"

	"github.com/aretw0/afterglow/internal/logging"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/history"
)

// DefaultHistorySize is the capacity of both histories unless configured otherwise.
const DefaultHistorySize = 5

// Tracker records a bounded history of configurations and transitions and
// derives activeness scores and the active region from it.
//
// Tracker performs no locking and never blocks: every call is an in-memory
// mutation or read, and hooks run synchronously on the caller's stack.
// Callers sharing a Tracker between goroutines must serialize access.
type Tracker struct {
	configurations *history.Buffer[domain.Configuration]
	transitions    *history.Buffer[*domain.Transition]
	running        bool
	activeRegion   domain.Rect

	hooks  domain.TrackerHooks
	logger *slog.Logger
}

// NewTracker creates a tracker with DefaultHistorySize unless overridden.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		configurations: history.New[domain.Configuration](DefaultHistorySize),
		transitions:    history.New[*domain.Transition](DefaultHistorySize),
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// HistorySize returns the capacity shared by both histories.
func (t *Tracker) HistorySize() int {
	return t.configurations.Cap()
}

// SetHistorySize resizes both histories, evicting the oldest entries when
// shrinking. Negative sizes are treated as 0. No notification is emitted.
func (t *Tracker) SetHistorySize(n int) {
	if n < 0 {
		n = 0
	}
	before := t.configurations.Len()
	t.configurations.SetCapacity(n)
	t.transitions.SetCapacity(n)

	t.logger.Debug("history size changed", "size", n, "evicted", before-t.configurations.Len())
}

// HistoryLen returns how many configurations are currently retained.
func (t *Tracker) HistoryLen() int {
	return t.configurations.Len()
}

// ActiveRegion returns the cached union rectangle of the active configuration.
func (t *Tracker) ActiveRegion() domain.Rect {
	return t.activeRegion
}

// Clear empties both histories. The capacity and the running flag are kept.
// The active region falls back to empty, notifying only if it was not empty.
func (t *Tracker) Clear(ctx context.Context) {
	t.configurations.Clear()
	t.transitions.Clear()
	t.logger.Debug("history cleared")

	if t.hooks.OnHistoryCleared != nil {
		t.hooks.OnHistoryCleared(ctx)
	}
	t.updateActiveRegion(ctx)
}

// ActiveConfiguration returns the newest configuration, or an empty one.
func (t *Tracker) ActiveConfiguration() domain.Configuration {
	c, _ := t.configurations.Last()
	return c
}

// LastConfigurations returns the configuration history, oldest first.
func (t *Tracker) LastConfigurations() []domain.Configuration {
	return t.configurations.Entries()
}

// SetActiveConfiguration records a newly observed configuration.
//
// Reporting the configuration that is already active is a no-op: nothing is
// pushed and no hook fires except OnConfigurationSkipped.
func (t *Tracker) SetActiveConfiguration(ctx context.Context, c domain.Configuration) {
	if !t.configurations.IsEmpty() && t.ActiveConfiguration().Equal(c) {
		t.logger.Debug("configuration unchanged, skipping", "states", c.IDs())
		if t.hooks.OnConfigurationSkipped != nil {
			t.hooks.OnConfigurationSkipped(ctx, c)
		}
		return
	}

	if t.configurations.Len() == t.configurations.Cap() && t.configurations.Cap() > 0 {
		oldest := t.configurations.At(0)
		t.logger.Debug("evicting oldest configuration", "states", oldest.IDs())
	}
	t.configurations.Push(c)
	t.logger.Debug("configuration recorded", "states", c.IDs(), "history_len", t.configurations.Len())

	if t.hooks.OnActiveConfigurationChanged != nil {
		t.hooks.OnActiveConfigurationChanged(ctx, c)
	}
	t.updateActiveRegion(ctx)
}

// LastTransitions returns the transition history, oldest first.
func (t *Tracker) LastTransitions() []*domain.Transition {
	return t.transitions.Entries()
}

// LastTransition returns the newest transition, or nil.
func (t *Tracker) LastTransition() *domain.Transition {
	tr, _ := t.transitions.Last()
	return tr
}

// SetLastTransition records a fired transition. A nil transition is ignored.
func (t *Tracker) SetLastTransition(ctx context.Context, tr *domain.Transition) {
	if tr == nil {
		t.logger.Warn("ignoring nil transition")
		return
	}

	t.transitions.Push(tr)
	t.logger.Debug("transition recorded", "transition", tr.ID, "history_len", t.transitions.Len())

	if t.hooks.OnTransitionRecorded != nil {
		t.hooks.OnTransitionRecorded(ctx, tr)
	}
}

// IsRunning reports the running flag.
func (t *Tracker) IsRunning() bool {
	return t.running
}

// SetIsRunning updates the running flag, notifying only on change.
func (t *Tracker) SetIsRunning(ctx context.Context, running bool) {
	if t.running == running {
		return
	}
	t.running = running
	t.logger.Debug("running changed", "running", running)

	if t.hooks.OnRunningChanged != nil {
		t.hooks.OnRunningChanged(ctx, running)
	}
}

// ActivenessForState scores how recently s was active: 1 when it is part of
// the newest configuration, 1/n when it was last seen in the oldest retained
// one, and 0 when it is absent from the window.
func (t *Tracker) ActivenessForState(s *domain.State) float64 {
	if s == nil {
		return 0
	}
	return relativePosition(t.configurations.Backward(), t.configurations.Len(),
		func(c domain.Configuration) bool { return c.Contains(s) })
}

// ActivenessForTransition scores the position of the oldest retained
// occurrence of tr, (i+1)/n, or 0 when it is absent.
//
// Unlike ActivenessForState this looks at the first occurrence, not the most
// recent one. Visualizations depend on the current scores, so keep it.
func (t *Tracker) ActivenessForTransition(tr *domain.Transition) float64 {
	if tr == nil {
		return 0
	}
	return relativePosition(t.transitions.All(), t.transitions.Len(),
		func(candidate *domain.Transition) bool { return candidate == tr })
}

func (t *Tracker) updateActiveRegion(ctx context.Context) {
	var region domain.Rect
	for _, s := range t.ActiveConfiguration().States() {
		region = region.United(s.BoundingRect())
	}

	if region.Equal(t.activeRegion) {
		return
	}
	t.activeRegion = region
	t.logger.Debug("active region changed", "region", region.String())

	if t.hooks.OnActiveRegionChanged != nil {
		t.hooks.OnActiveRegionChanged(ctx, region)
	}
}
