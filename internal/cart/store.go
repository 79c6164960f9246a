package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/rs/zerolog"
)

// Store is one session's cart: an ordered list of line items with at most one
// entry per (productID, size) identity. Every mutation persists a snapshot
// synchronously. The same Store is shared by concurrent requests for one
// device, so all item access goes through the mutex.
type Store struct {
	deviceID string
	mu       sync.Mutex
	items    []model.CartLineItem
	snaps    Snapshotter
	logger   zerolog.Logger
}

// NewStore creates an empty cart store for a device.
func NewStore(deviceID string, snaps Snapshotter, logger zerolog.Logger) *Store {
	return &Store{
		deviceID: deviceID,
		snaps:    snaps,
		logger:   logger.With().Str("component", "cart-store").Str("device_id", deviceID).Logger(),
	}
}

// Restore loads the last persisted snapshot. It never fails: any read or
// decode problem falls back to an empty cart.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.snaps.Load(ctx, s.deviceID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to restore cart snapshot, starting empty")
		s.items = nil
		return
	}

	// Drop malformed entries rather than refusing the whole snapshot.
	restored := make([]model.CartLineItem, 0, len(items))
	for _, it := range items {
		if it.ProductID > 0 && it.Quantity >= 1 {
			restored = append(restored, it)
		}
	}
	s.items = restored

	if len(restored) > 0 {
		s.logger.Debug().Int("count", len(restored)).Msg("cart restored from snapshot")
	}
}

// AddItem merges a product into the cart. If the product declares selectable
// sizes, a size must be given. A line item with the same (productID, size)
// identity has its quantity increased; otherwise a new line item is appended.
func (s *Store) AddItem(ctx context.Context, product *model.Product, size string, qty int) error {
	if product == nil {
		return model.ErrProductNotFound
	}

	if qty < 1 {
		return model.ErrInvalidQuantity
	}

	if product.HasSizes() && size == "" {
		s.logger.Debug().Int64("product_id", product.ID).Msg("size required but not selected")
		return model.ErrSizeRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].SameIdentity(product.ID, size) {
			s.items[i].Quantity += qty
			merged = true
			break
		}
	}

	if !merged {
		s.items = append(s.items, model.CartLineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Size:      size,
			Quantity:  qty,
			ImageRef:  product.ImageURL,
		})
	}

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.logger.Debug().
		Int64("product_id", product.ID).
		Str("size", size).
		Int("qty", qty).
		Bool("merged", merged).
		Msg("item added to cart")

	return nil
}

// RemoveItem removes the line item with the given identity. Removing an
// absent item is a no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, productID int64, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameIdentity(productID, size) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if err := s.persist(ctx); err != nil {
				return err
			}
			s.logger.Debug().
				Int64("product_id", productID).
				Str("size", size).
				Msg("item removed from cart")
			return nil
		}
	}
	return nil
}

// Clear empties the cart and removes the persisted snapshot. It is called
// once, after a successful checkout.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.snaps.Delete(ctx, s.deviceID); err != nil {
		s.logger.Error().Err(err).Msg("failed to delete cart snapshot")
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	s.logger.Debug().Msg("cart cleared")
	return nil
}

// Items returns a copy of the current line items. Mutating the returned slice
// does not affect the cart.
func (s *Store) Items() []model.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.CartLineItem, len(s.items))
	copy(items, s.items)
	return items
}

// IsEmpty reports whether the cart has no line items.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// DeviceID returns the device this cart belongs to.
func (s *Store) DeviceID() string {
	return s.deviceID
}

func (s *Store) persist(ctx context.Context) error {
	if err := s.snaps.Save(ctx, s.deviceID, s.items); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist cart snapshot")
		return fmt.Errorf("failed to persist cart snapshot: %w", err)
	}
	return nil
}
