// Package cart holds a session's line items and keeps them durable across
// reloads through a snapshot store keyed by device.
package cart

import (
	"context"

	"github.com/Ziad-Belal/strike-api/internal/model"
)

// Snapshotter persists cart snapshots keyed by device ID.
type Snapshotter interface {
	// Load returns the last persisted snapshot for a device. A missing
	// snapshot is (nil, nil).
	Load(ctx context.Context, deviceID string) ([]model.CartLineItem, error)

	// Save persists the snapshot for a device, replacing any previous one.
	Save(ctx context.Context, deviceID string, items []model.CartLineItem) error

	// Delete removes the persisted snapshot for a device.
	Delete(ctx context.Context, deviceID string) error
}
