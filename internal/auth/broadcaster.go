package auth

import (
	"sync"

	"github.com/rs/zerolog"
)

// Handler receives identity change notifications. A nil identity means
// sign-out.
type Handler func(id *Identity)

// Broadcaster fans identity changes out to subscribers. Subscribe returns an
// unsubscribe function that must be called on teardown.
type Broadcaster struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]Handler
	logger   zerolog.Logger
}

// NewBroadcaster creates an identity change broadcaster.
func NewBroadcaster(logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		handlers: make(map[int]Handler),
		logger:   logger.With().Str("component", "auth-broadcaster").Logger(),
	}
}

// Subscribe registers a handler for identity changes and returns its
// unsubscribe function.
func (b *Broadcaster) Subscribe(handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish notifies all subscribers of an identity change.
func (b *Broadcaster) Publish(id *Identity) {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(id)
	}
}
