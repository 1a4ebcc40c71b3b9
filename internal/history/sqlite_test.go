package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyzr-apps/storecheck/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	err = s.Migrate(context.Background())
	require.NoError(t, err)

	t.Cleanup(func() { s.Close() })
	return s
}

func testEntry(appName string, score int, date time.Time) *models.HistoryEntry {
	return &models.HistoryEntry{
		Date:            date,
		AppName:         appName,
		ComplianceScore: score,
		HighCount:       1,
		MediumCount:     2,
		LowCount:        3,
		Result: &models.AnalysisResult{
			ComplianceScore: score,
			ReadinessStatus: models.ReadinessForScore(score),
			RiskSummary:     models.RiskSummary{High: 1, Medium: 2, Low: 3},
			Categories:      []models.Category{{CategoryName: "Privacy"}},
		},
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestAppendAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := testEntry("PhotoSync Pro", 72, time.Now().UTC())
	require.NoError(t, s.Append(ctx, e))
	assert.NotEmpty(t, e.ID, "ULID assigned")

	got, err := s.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "PhotoSync Pro", got.AppName)
	assert.Equal(t, 72, got.ComplianceScore)
	require.NotNil(t, got.Result)
	assert.Equal(t, models.ReadinessNeedsFixes, got.Result.ReadinessStatus)
	require.Len(t, got.Result.Categories, 1)
}

func TestList_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(ctx, testEntry("First", 45, base)))
	require.NoError(t, s.Append(ctx, testEntry("Second", 72, base.Add(time.Hour))))
	require.NoError(t, s.Append(ctx, testEntry("Third", 89, base.Add(2*time.Hour))))

	entries, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Third", entries[0].AppName)
	assert.Equal(t, "Second", entries[1].AppName)
	assert.Equal(t, "First", entries[2].AppName)
}

func TestList_Search(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, testEntry("PhotoSync Pro", 72, time.Now().UTC())))
	require.NoError(t, s.Append(ctx, testEntry("BudgetWise", 45, time.Now().UTC())))

	entries, err := s.List(ctx, "photo")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "PhotoSync Pro", entries[0].AppName)

	entries, err = s.List(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Latest(ctx)
	assert.Error(t, err, "empty history")

	base := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(ctx, testEntry("Old", 45, base)))
	require.NoError(t, s.Append(ctx, testEntry("New", 89, base.Add(time.Hour))))

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New", latest.AppName)
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, testEntry("App", 50, time.Now().UTC())))
	require.NoError(t, s.Clear(ctx))

	entries, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStore_PrependsAndSearches(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, testEntry("A", 10, time.Now().UTC())))
	require.NoError(t, s.Append(ctx, testEntry("B", 20, time.Now().UTC())))

	entries, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "B", entries[0].AppName)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B", latest.AppName)

	entries, err = s.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].AppName)
}
