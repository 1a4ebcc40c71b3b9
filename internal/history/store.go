// Package history persists completed analysis reports locally.
package history

import (
	"context"

	"github.com/lyzr-apps/storecheck/internal/models"
)

// Store defines the persistence interface for analysis history.
// Entries are append-only and ordered newest first; the only
// destructive operation is a full clear.
type Store interface {
	Append(ctx context.Context, entry *models.HistoryEntry) error
	List(ctx context.Context, search string) ([]*models.HistoryEntry, error)
	Get(ctx context.Context, id string) (*models.HistoryEntry, error)
	Latest(ctx context.Context) (*models.HistoryEntry, error)
	Clear(ctx context.Context) error

	Migrate(ctx context.Context) error
	Close() error
}
