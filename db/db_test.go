package db_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/dasdy/bookvote/db"
	"github.com/dasdy/bookvote/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemoryStorage(t *testing.T) *db.SQLiteStorage {
	t.Helper()

	storage, err := db.NewStorageFromPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	return storage
}

func storeAll(t *testing.T, storage db.Storage, records []model.VoteRecord) {
	t.Helper()

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := range records {
		if records[i].Timestamp.IsZero() {
			records[i].Timestamp = start.Add(time.Duration(i) * time.Second)
		}

		require.NoError(t, storage.Store(context.Background(), &records[i]))
	}
}

func TestConnectToMemoryDB(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		storage := openMemoryStorage(t)

		summaries, err := storage.Summaries()

		require.NoError(t, err)
		assert.Empty(t, summaries)

		states, err := db.RestoreStates(storage, io.Discard)

		require.NoError(t, err)
		assert.Empty(t, states)
	})

	t.Run("iterates in chronological order", func(t *testing.T) {
		storage := openMemoryStorage(t)

		storeAll(t, storage, []model.VoteRecord{
			{Title: "b", Value: 1, State: model.StateUp, Status: 200, Rating: "1", Timestamp: time.Date(2024, 5, 1, 12, 0, 2, 0, time.UTC)},
			{Title: "a", Value: -1, State: model.StateDown, Status: 500, Error: "error", Timestamp: time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC)},
		})

		items, err := storage.AllIterator()
		require.NoError(t, err)

		result := make([]model.VoteRecord, 0)
		for item := range items {
			result = append(result, item)
		}

		require.Len(t, result, 2)
		assert.Equal(t, "a", result[0].Title)
		assert.Equal(t, -1, result[0].Value)
		assert.Equal(t, model.StateDown, result[0].State)
		assert.Equal(t, 500, result[0].Status)
		assert.Equal(t, "error", result[0].Error)
		assert.Equal(t, "b", result[1].Title)
		assert.Equal(t, "1", result[1].Rating)
		assert.True(t, result[1].Timestamp.Equal(time.Date(2024, 5, 1, 12, 0, 2, 0, time.UTC)))
	})
}

func TestSummaries(t *testing.T) {
	storage := openMemoryStorage(t)

	storeAll(t, storage, []model.VoteRecord{
		{Title: "Go blog", Value: 1, State: model.StateUp, Status: 200, Rating: "5"},
		{Title: "Go blog", Value: -1, State: model.StateDown, Status: 200, Rating: "3"},
		{Title: "Go blog", Value: -1, State: model.StateNone, Status: 500, Error: "error"},
		{Title: "Rust book", Value: 1, State: model.StateUp, Status: 403, Error: "csrf"},
	})

	summaries, err := storage.Summaries()

	require.NoError(t, err)
	assert.Equal(t, []model.RowSummary{
		{Title: "Go blog", Submissions: 3, Failures: 1, LastState: model.StateNone, LastRating: "3"},
		{Title: "Rust book", Submissions: 1, Failures: 1, LastState: model.StateUp, LastRating: ""},
	}, summaries)
}

func TestSummariesCountEmptyBodyFailures(t *testing.T) {
	storage := openMemoryStorage(t)

	storeAll(t, storage, []model.VoteRecord{
		{Title: "Go blog", Value: 1, State: model.StateUp, Status: 200, Rating: "5"},
		{Title: "Go blog", Value: 1, State: model.StateNone, Status: 502},
		{Title: "Rust book", Value: -1, State: model.StateDown, Status: 201, Rating: "-1"},
	})

	summaries, err := storage.Summaries()

	require.NoError(t, err)
	assert.Equal(t, []model.RowSummary{
		{Title: "Go blog", Submissions: 2, Failures: 1, LastState: model.StateNone, LastRating: "5"},
		{Title: "Rust book", Submissions: 1, Failures: 0, LastState: model.StateDown, LastRating: "-1"},
	}, summaries)
}

func TestRestoreStates(t *testing.T) {
	storage := openMemoryStorage(t)

	storeAll(t, storage, []model.VoteRecord{
		{Title: "a", Value: 1, State: model.StateUp},
		{Title: "b", Value: -1, State: model.StateDown},
		{Title: "a", Value: -1, State: model.StateDown},
		{Title: "c", Value: 1, State: model.StateUp},
		{Title: "c", Value: 1, State: model.StateNone},
	})

	states, err := db.RestoreStates(storage, io.Discard)

	require.NoError(t, err)
	assert.Equal(t, map[string]model.VoteState{
		"a": model.StateDown,
		"b": model.StateDown,
		"c": model.StateNone,
	}, states)
}
