package domain

import "context"

// TrackerHooks defines the synchronous callbacks fired by the tracker.
// Every callback runs on the call stack of the mutation that triggered it,
// in order. A nil callback is skipped.
//
// Observers must not feed the same change back into the tracker from inside
// a callback; the de-duplication of configurations is what stops an echoed
// configuration from looping, nothing else does.
type TrackerHooks struct {
	// OnActiveConfigurationChanged fires after a new configuration was recorded.
	OnActiveConfigurationChanged func(context.Context, Configuration)

	// OnActiveRegionChanged fires when the union rectangle of the active
	// configuration differs from the previously cached one.
	OnActiveRegionChanged func(context.Context, Rect)

	// OnRunningChanged fires when the running flag actually changes.
	OnRunningChanged func(context.Context, bool)

	// OnTransitionRecorded fires after a transition was appended to the history.
	OnTransitionRecorded func(context.Context, *Transition)

	// OnConfigurationSkipped fires when a configuration equal to the active one
	// was reported and therefore not recorded.
	OnConfigurationSkipped func(context.Context, Configuration)

	// OnHistoryCleared fires after both histories were emptied.
	OnHistoryCleared func(context.Context)
}

// ChainHooks merges several hook sets into one that calls them in order.
func ChainHooks(hooks ...TrackerHooks) TrackerHooks {
	return TrackerHooks{
		OnActiveConfigurationChanged: func(ctx context.Context, c Configuration) {
			for _, h := range hooks {
				if h.OnActiveConfigurationChanged != nil {
					h.OnActiveConfigurationChanged(ctx, c)
				}
			}
		},
		OnActiveRegionChanged: func(ctx context.Context, r Rect) {
			for _, h := range hooks {
				if h.OnActiveRegionChanged != nil {
					h.OnActiveRegionChanged(ctx, r)
				}
			}
		},
		OnRunningChanged: func(ctx context.Context, running bool) {
			for _, h := range hooks {
				if h.OnRunningChanged != nil {
					h.OnRunningChanged(ctx, running)
				}
			}
		},
		OnTransitionRecorded: func(ctx context.Context, t *Transition) {
			for _, h := range hooks {
				if h.OnTransitionRecorded != nil {
					h.OnTransitionRecorded(ctx, t)
				}
			}
		},
		OnConfigurationSkipped: func(ctx context.Context, c Configuration) {
			for _, h := range hooks {
				if h.OnConfigurationSkipped != nil {
					h.OnConfigurationSkipped(ctx, c)
				}
			}
		},
		OnHistoryCleared: func(ctx context.Context) {
			for _, h := range hooks {
				if h.OnHistoryCleared != nil {
					h.OnHistoryCleared(ctx)
				}
			}
		},
	}
}
