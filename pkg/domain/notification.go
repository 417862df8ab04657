package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NotificationType names an observable change of the tracker.
type NotificationType string

const (
	NotifyConfigurationChanged NotificationType = "configuration_changed"
	NotifyRegionChanged        NotificationType = "region_changed"
	NotifyRunningChanged       NotificationType = "running_changed"
	NotifyTransitionRecorded   NotificationType = "transition_recorded"
	NotifyHistoryCleared       NotificationType = "history_cleared"
)

// Notification is the serializable form of a tracker hook invocation.
// It is what remote observers (SSE clients, Redis subscribers) receive.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`

	Configuration []string `json:"configuration,omitempty"`
	Region        *Rect    `json:"region,omitempty"`
	Running       *bool    `json:"running,omitempty"`
	Transition    string   `json:"transition,omitempty"`
}

// NewNotification stamps a notification with a fresh ID and the current time.
func NewNotification(kind NotificationType) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Type:      kind,
		Timestamp: time.Now().UTC(),
	}
}

// NotificationHooks adapts a notification sink to TrackerHooks.
func NotificationHooks(emit func(context.Context, Notification)) TrackerHooks {
	return TrackerHooks{
		OnActiveConfigurationChanged: func(ctx context.Context, c Configuration) {
			n := NewNotification(NotifyConfigurationChanged)
			n.Configuration = c.IDs()
			emit(ctx, n)
		},
		OnActiveRegionChanged: func(ctx context.Context, r Rect) {
			n := NewNotification(NotifyRegionChanged)
			n.Region = &r
			emit(ctx, n)
		},
		OnRunningChanged: func(ctx context.Context, running bool) {
			n := NewNotification(NotifyRunningChanged)
			n.Running = &running
			emit(ctx, n)
		},
		OnTransitionRecorded: func(ctx context.Context, t *Transition) {
			n := NewNotification(NotifyTransitionRecorded)
			n.Transition = t.ID
			emit(ctx, n)
		},
		OnHistoryCleared: func(ctx context.Context) {
			emit(ctx, NewNotification(NotifyHistoryCleared))
		},
	}
}
