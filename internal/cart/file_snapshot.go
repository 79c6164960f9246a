package cart

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/rs/zerolog"
)

// fileSnapshotter implements Snapshotter with one JSON file per device under
// a snapshot directory.
type fileSnapshotter struct {
	dir    string
	logger zerolog.Logger
}

// NewFileSnapshotter creates a file-backed snapshot store. The directory is
// created if it does not exist.
func NewFileSnapshotter(dir string, logger zerolog.Logger) (Snapshotter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}
	return &fileSnapshotter{
		dir:    dir,
		logger: logger.With().Str("component", "cart-snapshots").Logger(),
	}, nil
}

// Load returns the last persisted snapshot for a device.
func (f *fileSnapshotter) Load(ctx context.Context, deviceID string) ([]model.CartLineItem, error) {
	data, err := os.ReadFile(f.path(deviceID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var items []model.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}

	return items, nil
}

// Save persists the snapshot for a device, replacing any previous one.
// The write goes through a temp file and rename so a crash mid-write cannot
// leave a truncated snapshot.
func (f *fileSnapshotter) Save(ctx context.Context, deviceID string, items []model.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	path := f.path(deviceID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace cart snapshot: %w", err)
	}

	return nil
}

// Delete removes the persisted snapshot for a device.
func (f *fileSnapshotter) Delete(ctx context.Context, deviceID string) error {
	if err := os.Remove(f.path(deviceID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

// path maps a device ID to its snapshot file. Device IDs come from request
// headers, so they are encoded rather than used as raw path components.
func (f *fileSnapshotter) path(deviceID string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(deviceID))
	return filepath.Join(f.dir, name+".json")
}
