package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is anything that can happen in the system.
type Event interface {
	Name() string
}

// Listener handles events.
type Listener func(ctx context.Context, event Event) error

type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish notifies every subscriber in its own goroutine. Listener errors are
// logged, not propagated.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.listeners[eventName] {
		go func(l Listener) {
			ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("event listener failed",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Dispatch runs every subscriber synchronously and returns the first error.
// Used where the side effect must complete before the request responds, such
// as session revocation on privilege changes.
func (b *Bus) Dispatch(ctx context.Context, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.listeners[eventName] {
		if err := listener(ctx, event); err != nil {
			b.logger.Error("event listener failed",
				zap.String("event", eventName),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}
