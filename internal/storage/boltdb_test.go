package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/types"
)

func newTestHistoryStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(HistoryConfig{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(hash string, captured time.Time) *types.ImageRecord {
	return &types.ImageRecord{
		Path:     "/tmp/images/" + hash + ".png",
		Size:     100,
		Width:    2,
		Height:   2,
		Hash:     hash,
		Captured: captured,
	}
}

func TestHistoryStore(t *testing.T) {
	t.Run("SaveAndGetLatest", func(t *testing.T) {
		store := newTestHistoryStore(t)

		record := testRecord("abc123", time.Now())
		require.NoError(t, store.SaveRecord(record))

		latest, err := store.GetLatest()
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, record.Hash, latest.Hash)
		assert.Equal(t, record.Path, latest.Path)
		assert.Equal(t, record.Width, latest.Width)
	})

	t.Run("EmptyHistory", func(t *testing.T) {
		store := newTestHistoryStore(t)

		latest, err := store.GetLatest()
		assert.NoError(t, err)
		assert.Nil(t, latest)

		records, err := store.GetHistory(10)
		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("DeduplicatesByHash", func(t *testing.T) {
		store := newTestHistoryStore(t)
		start := time.Now()

		require.NoError(t, store.SaveRecord(testRecord("samehash", start)))
		require.NoError(t, store.SaveRecord(testRecord("samehash", start.Add(time.Second))))

		records, err := store.GetHistory(0)
		require.NoError(t, err)
		require.Len(t, records, 1)

		occurrences, err := store.GetOccurrences("samehash")
		require.NoError(t, err)
		require.Len(t, occurrences, 2)
		// Newest first.
		assert.True(t, occurrences[0].After(occurrences[1]))

		// The record surfaces its most recent capture time.
		assert.WithinDuration(t, start.Add(time.Second), records[0].Captured, time.Millisecond)
	})

	t.Run("HistoryOrderAndLimit", func(t *testing.T) {
		store := newTestHistoryStore(t)
		start := time.Now()

		require.NoError(t, store.SaveRecord(testRecord("oldest", start)))
		require.NoError(t, store.SaveRecord(testRecord("middle", start.Add(time.Second))))
		require.NoError(t, store.SaveRecord(testRecord("newest", start.Add(2*time.Second))))

		records, err := store.GetHistory(2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "newest", records[0].Hash)
		assert.Equal(t, "middle", records[1].Hash)

		all, err := store.GetHistory(0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("DeleteRecord", func(t *testing.T) {
		store := newTestHistoryStore(t)

		require.NoError(t, store.SaveRecord(testRecord("gone", time.Now())))
		require.NoError(t, store.DeleteRecord("gone"))

		records, err := store.GetHistory(0)
		require.NoError(t, err)
		assert.Empty(t, records)

		// Deleting an unknown hash is not an error.
		assert.NoError(t, store.DeleteRecord("never-existed"))
	})

	t.Run("RejectsRecordWithoutHash", func(t *testing.T) {
		store := newTestHistoryStore(t)
		assert.Error(t, store.SaveRecord(&types.ImageRecord{Path: "/tmp/x.png"}))
		assert.Error(t, store.SaveRecord(nil))
	})
}
