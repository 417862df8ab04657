package http

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/afterglow/pkg/domain"
)

// StreamManager fans tracker notifications out to active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan domain.Notification]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan domain.Notification]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel and returns it with its cancel function.
func (sm *StreamManager) Subscribe() (<-chan domain.Notification, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan domain.Notification, 16)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Len returns the number of connected subscribers.
func (sm *StreamManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Broadcast never blocks: slow clients lose messages.
func (sm *StreamManager) Broadcast(n domain.Notification) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- n:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "type", n.Type, "id", n.ID)
		}
	}
}

// Hooks returns tracker hooks that broadcast every notification.
func (sm *StreamManager) Hooks() domain.TrackerHooks {
	return domain.NotificationHooks(func(_ context.Context, n domain.Notification) {
		sm.Broadcast(n)
	})
}
