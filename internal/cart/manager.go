package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Manager hands out per-device cart stores. The first request for a device
// restores its snapshot; later requests reuse the in-memory store. All cart
// mutations for one device flow through the same Store.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	snaps  Snapshotter
	logger zerolog.Logger
}

// NewManager creates a cart manager over the given snapshot store.
func NewManager(snaps Snapshotter, logger zerolog.Logger) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		snaps:  snaps,
		logger: logger.With().Str("component", "cart-manager").Logger(),
	}
}

// Session returns the cart store for a device, restoring its snapshot on
// first access.
func (m *Manager) Session(ctx context.Context, deviceID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[deviceID]; ok {
		return store
	}

	store := NewStore(deviceID, m.snaps, m.logger)
	store.Restore(ctx)
	m.stores[deviceID] = store
	return store
}

// Evict drops the in-memory store for a device. The persisted snapshot is
// untouched, so the next Session call restores it.
func (m *Manager) Evict(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, deviceID)
}
