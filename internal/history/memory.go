package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lyzr-apps/storecheck/internal/models"
)

// MemoryStore is the degraded, in-memory fallback used when the
// history database cannot be opened. Entries survive a single run
// only. Not safe for concurrent use; the CLI is single-threaded.
type MemoryStore struct {
	entries []*models.HistoryEntry // newest first
}

// NewMemoryStore returns an empty in-memory history.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, entry *models.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = newULID()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}
	s.entries = append([]*models.HistoryEntry{entry}, s.entries...)
	return nil
}

func (s *MemoryStore) List(_ context.Context, search string) ([]*models.HistoryEntry, error) {
	if search == "" {
		return append([]*models.HistoryEntry(nil), s.entries...), nil
	}
	term := strings.ToLower(search)
	var out []*models.HistoryEntry
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.AppName), term) ||
			strings.Contains(e.Date.Format(time.RFC3339), search) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.HistoryEntry, error) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("history entry %s not found", id)
}

func (s *MemoryStore) Latest(_ context.Context) (*models.HistoryEntry, error) {
	if len(s.entries) == 0 {
		return nil, fmt.Errorf("no analysis history yet")
	}
	return s.entries[0], nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.entries = nil
	return nil
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }
func (s *MemoryStore) Close() error                  { return nil }
