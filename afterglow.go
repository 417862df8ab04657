package afterglow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/afterglow/internal/logging"
	"github.com/aretw0/afterglow/internal/runtime"
	"github.com/aretw0/afterglow/pkg/adapters/memory"
	"github.com/aretw0/afterglow/pkg/domain"
	"github.com/aretw0/afterglow/pkg/observability"
	"github.com/aretw0/afterglow/pkg/ports"
)

// Tracker is the high-level entry point of the library.
// It wraps the single-threaded runtime tracker, serializes every call so it can
// be shared by transports, and resolves IDs through a Catalog.
//
// Hooks run while the Tracker's lock is held. An observer must not call back
// into the same Tracker from inside a hook.
type Tracker struct {
	mu      sync.RWMutex
	core    *runtime.Tracker
	catalog ports.Catalog

	observers []observer
	nextID    int
	chained   domain.TrackerHooks

	historySize int
	logger      *slog.Logger
	metrics     *observability.Metrics
}

type observer struct {
	id    int
	hooks domain.TrackerHooks
}

// Option defines a functional option for configuring the Tracker.
type Option func(*Tracker)

// WithHistorySize sets the capacity of both histories (default 5).
func WithHistorySize(n int) Option {
	return func(t *Tracker) {
		t.historySize = n
	}
}

// WithLogger sets a custom structured logger for the tracker.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithHooks registers change observers at construction time.
func WithHooks(hooks domain.TrackerHooks) Option {
	return func(t *Tracker) {
		t.addObserver(hooks)
	}
}

// WithMetrics records Prometheus metrics for every change.
func WithMetrics(m *observability.Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
		t.addObserver(m.Hooks())
	}
}

// New creates a Tracker over the given catalog.
// A nil catalog is replaced by an empty in-memory one.
func New(catalog ports.Catalog, opts ...Option) *Tracker {
	t := &Tracker{
		catalog:     catalog,
		historySize: runtime.DefaultHistorySize,
		chained:     domain.ChainHooks(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.catalog == nil {
		t.catalog, _ = memory.NewCatalog(nil, nil)
	}
	if t.logger == nil {
		t.logger = logging.NewNop()
	}

	t.core = runtime.NewTracker(
		runtime.WithLogger(t.logger),
		runtime.WithHistorySize(t.historySize),
		runtime.WithHooks(t.dispatch()),
	)
	t.observeHistory()
	return t
}

// Catalog returns the catalog used to resolve IDs.
func (t *Tracker) Catalog() ports.Catalog {
	return t.catalog
}

// Observe registers hooks and returns a function removing them.
func (t *Tracker) Observe(hooks domain.TrackerHooks) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.addObserver(hooks)
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.removeObserver(id)
	}
}

// HistorySize returns the capacity shared by both histories.
func (t *Tracker) HistorySize() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.HistorySize()
}

// SetHistorySize resizes both histories. Resizing emits no notification.
func (t *Tracker) SetHistorySize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidHistorySize, n)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.core.SetHistorySize(n)
	t.observeHistory()
	return nil
}

// HistoryLen returns the number of retained configurations.
func (t *Tracker) HistoryLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.HistoryLen()
}

// ActiveRegion returns the union rectangle of the active configuration.
func (t *Tracker) ActiveRegion() domain.Rect {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.ActiveRegion()
}

// Clear empties both histories, keeping capacity and the running flag.
func (t *Tracker) Clear(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.core.Clear(ctx)
	t.observeHistory()
}

// ActiveConfiguration returns the newest configuration, or an empty one.
func (t *Tracker) ActiveConfiguration() domain.Configuration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.ActiveConfiguration()
}

// LastConfigurations returns the configuration history, oldest first.
func (t *Tracker) LastConfigurations() []domain.Configuration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.LastConfigurations()
}

// SetActiveConfiguration records a configuration. Repeating the active one is a no-op.
func (t *Tracker) SetActiveConfiguration(ctx context.Context, c domain.Configuration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.core.SetActiveConfiguration(ctx, c)
	t.observeHistory()
}

// SetActiveStates resolves the IDs through the catalog and records the
// resulting configuration. Nothing is recorded if any ID is unknown.
func (t *Tracker) SetActiveStates(ctx context.Context, ids ...string) error {
	states := make([]*domain.State, 0, len(ids))
	for _, id := range ids {
		s, err := t.catalog.State(id)
		if err != nil {
			return fmt.Errorf("cannot record configuration: %w", err)
		}
		states = append(states, s)
	}

	t.SetActiveConfiguration(ctx, domain.NewConfiguration(states...))
	return nil
}

// LastTransitions returns the transition history, oldest first.
func (t *Tracker) LastTransitions() []*domain.Transition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.LastTransitions()
}

// LastTransition returns the newest transition, or nil.
func (t *Tracker) LastTransition() *domain.Transition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.LastTransition()
}

// SetLastTransition records a fired transition. Nil is ignored.
func (t *Tracker) SetLastTransition(ctx context.Context, tr *domain.Transition) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.core.SetLastTransition(ctx, tr)
	t.observeHistory()
}

// RecordTransition resolves a transition ID and records it.
// An empty ID is a degenerate reference and is dropped without error.
func (t *Tracker) RecordTransition(ctx context.Context, id string) error {
	if id == "" {
		t.logger.Warn("ignoring transition event without id")
		return nil
	}
	tr, err := t.catalog.Transition(id)
	if err != nil {
		return fmt.Errorf("cannot record transition: %w", err)
	}

	t.SetLastTransition(ctx, tr)
	return nil
}

// IsRunning reports the running flag.
func (t *Tracker) IsRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.IsRunning()
}

// SetIsRunning updates the running flag, notifying only on change.
func (t *Tracker) SetIsRunning(ctx context.Context, running bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.core.SetIsRunning(ctx, running)
}

// ActivenessForState scores a state reference (see runtime.Tracker).
func (t *Tracker) ActivenessForState(s *domain.State) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.ActivenessForState(s)
}

// ActivenessForTransition scores a transition reference (see runtime.Tracker).
func (t *Tracker) ActivenessForTransition(tr *domain.Transition) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.core.ActivenessForTransition(tr)
}

// StateActiveness scores a state by ID.
func (t *Tracker) StateActiveness(id string) (float64, error) {
	s, err := t.catalog.State(id)
	if err != nil {
		return 0, err
	}
	return t.ActivenessForState(s), nil
}

// TransitionActiveness scores a transition by ID.
func (t *Tracker) TransitionActiveness(id string) (float64, error) {
	tr, err := t.catalog.Transition(id)
	if err != nil {
		return 0, err
	}
	return t.ActivenessForTransition(tr), nil
}

// Apply dispatches an upstream event to the matching operation.
func (t *Tracker) Apply(ctx context.Context, evt domain.Event) error {
	if err := evt.Validate(); err != nil {
		return err
	}

	switch evt.Type {
	case domain.EventConfiguration:
		return t.SetActiveStates(ctx, evt.States...)
	case domain.EventTransition:
		return t.RecordTransition(ctx, evt.Transition)
	case domain.EventRunning:
		t.SetIsRunning(ctx, *evt.Running)
	case domain.EventClear:
		t.Clear(ctx)
	case domain.EventHistorySize:
		return t.SetHistorySize(*evt.Size)
	}
	return nil
}

// Snapshot returns a consistent copy of everything the tracker exposes,
// including activeness scores for every catalog entity.
func (t *Tracker) Snapshot() domain.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snap := domain.Snapshot{
		HistorySize:          t.core.HistorySize(),
		Running:              t.core.IsRunning(),
		ActiveConfiguration:  t.core.ActiveConfiguration().IDs(),
		ActiveRegion:         t.core.ActiveRegion(),
		Configurations:       [][]string{},
		Transitions:          []string{},
		StateActiveness:      make(map[string]float64),
		TransitionActiveness: make(map[string]float64),
	}
	for _, c := range t.core.LastConfigurations() {
		snap.Configurations = append(snap.Configurations, c.IDs())
	}
	for _, tr := range t.core.LastTransitions() {
		snap.Transitions = append(snap.Transitions, tr.ID)
	}
	for _, s := range t.catalog.States() {
		snap.StateActiveness[s.ID] = t.core.ActivenessForState(s)
	}
	for _, tr := range t.catalog.Transitions() {
		snap.TransitionActiveness[tr.ID] = t.core.ActivenessForTransition(tr)
	}
	return snap
}

// addObserver must be called with mu held (or before the tracker is shared).
func (t *Tracker) addObserver(hooks domain.TrackerHooks) int {
	t.nextID++
	t.observers = append(t.observers, observer{id: t.nextID, hooks: hooks})
	t.rechain()
	return t.nextID
}

func (t *Tracker) removeObserver(id int) {
	for i, o := range t.observers {
		if o.id == id {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			break
		}
	}
	t.rechain()
}

func (t *Tracker) rechain() {
	hooks := make([]domain.TrackerHooks, len(t.observers))
	for i, o := range t.observers {
		hooks[i] = o.hooks
	}
	t.chained = domain.ChainHooks(hooks...)
}

// dispatch forwards core hooks to whatever observers are registered at call time.
func (t *Tracker) dispatch() domain.TrackerHooks {
	return domain.TrackerHooks{
		OnActiveConfigurationChanged: func(ctx context.Context, c domain.Configuration) {
			t.chained.OnActiveConfigurationChanged(ctx, c)
		},
		OnActiveRegionChanged: func(ctx context.Context, r domain.Rect) {
			t.chained.OnActiveRegionChanged(ctx, r)
		},
		OnRunningChanged: func(ctx context.Context, running bool) {
			t.chained.OnRunningChanged(ctx, running)
		},
		OnTransitionRecorded: func(ctx context.Context, tr *domain.Transition) {
			t.chained.OnTransitionRecorded(ctx, tr)
		},
		OnConfigurationSkipped: func(ctx context.Context, c domain.Configuration) {
			t.chained.OnConfigurationSkipped(ctx, c)
		},
		OnHistoryCleared: func(ctx context.Context) {
			t.chained.OnHistoryCleared(ctx)
		},
	}
}

func (t *Tracker) observeHistory() {
	if t.metrics == nil {
		return
	}
	t.metrics.ObserveHistory(t.core.HistoryLen(), len(t.core.LastTransitions()), t.core.HistorySize())
}
