package store

import (
	"context"

	"github.com/pct-cclausen/huntkeeper/internal/model"
)

// SnapshotStore persists the game state as one whole document.
// Implementations: JSON file (the historical state.json format) or bbolt.
//
// Load returns an empty snapshot, not an error, when nothing has been saved
// yet; a fresh deployment starts with no codes and no events.
type SnapshotStore interface {
	Save(ctx context.Context, snap *model.Snapshot) error
	Load(ctx context.Context) (*model.Snapshot, error)
}
