package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attrilens/domain/core"
	"attrilens/ports"
)

func newTestRepository(t *testing.T) ports.CatalogRepository {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewCatalogRepository(db)
	require.NoError(t, err)
	return repo
}

func newEntry(path string, loadedAt time.Time) *ports.CatalogEntry {
	return &ports.CatalogEntry{
		ID:          core.DatasetID(core.NewID()),
		SourcePath:  path,
		RecordCount: 1470,
		FieldCount:  20,
		Columns:     []string{"Attrition", "Age", "Department"},
		LoadedAt:    loadedAt,
	}
}

func TestGetCurrentEmptyCatalog(t *testing.T) {
	repo := newTestRepository(t)

	entry, err := repo.GetCurrent(context.Background())
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestRecordAndGetCurrent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	older := newEntry("data/old.csv", time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	newer := newEntry("data/new.csv", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Record(ctx, older))
	require.NoError(t, repo.Record(ctx, newer))

	current, err := repo.GetCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, newer.ID, current.ID)
	assert.Equal(t, "data/new.csv", current.SourcePath)
	assert.Equal(t, 1470, current.RecordCount)
	assert.Equal(t, []string{"Attrition", "Age", "Department"}, current.Columns)
	assert.True(t, current.LoadedAt.Equal(newer.LoadedAt))
}

func TestListNewestFirstWithLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Record(ctx, newEntry("data/run.csv", base.Add(time.Duration(i)*time.Hour))))
	}

	entries, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].LoadedAt.After(entries[1].LoadedAt))
}

func TestRecordRejectsDuplicateID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	entry := newEntry("data/dup.csv", time.Now().UTC())
	require.NoError(t, repo.Record(ctx, entry))
	assert.Error(t, repo.Record(ctx, entry))
}
