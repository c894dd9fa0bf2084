package boltdb

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/terminplaner/internal/models"
	"github.com/iudanet/terminplaner/internal/server/storage"
)

func testEvent(id, userID, title string) *models.Event {
	now := time.Now().UTC()
	return &models.Event{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: "Beschreibung",
		Date:        now.Add(24 * time.Hour),
		Location:    "Berlin",
		Category:    models.CategoryArbeit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestStorage_CreateAndGetEvent(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	event := testEvent("event-1", "user-1", "Team-Meeting")

	err := store.CreateEvent(ctx, event)
	require.NoError(t, err)

	got, err := store.GetEventByID(ctx, "event-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, event.UserID, got.UserID)
	assert.Equal(t, event.Title, got.Title)
	assert.Equal(t, event.Category, got.Category)
	assert.True(t, event.Date.Equal(got.Date))
}

func TestStorage_GetEvent_NotFound(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetEventByID(ctx, "no-such-event")
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestStorage_ListEventsByUser(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.CreateEvent(ctx, testEvent("event-1", "user-1", "Meeting")))
	require.NoError(t, store.CreateEvent(ctx, testEvent("event-2", "user-1", "Zahnarzt")))
	require.NoError(t, store.CreateEvent(ctx, testEvent("event-3", "user-2", "Kino")))

	events, err := store.ListEventsByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, "user-1", e.UserID)
	}

	// Пользователь без событий получает пустой слайс, не nil
	events, err = store.ListEventsByUser(ctx, "user-3")
	require.NoError(t, err)
	require.NotNil(t, events)
	assert.Empty(t, events)
}

func TestStorage_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	event := testEvent("event-1", "user-1", "Meeting")
	require.NoError(t, store.CreateEvent(ctx, event))

	newDate := time.Now().UTC().Add(48 * time.Hour)
	updated, err := store.UpdateEvent(ctx, "event-1", storage.EventFields{
		Title:       "Meeting verschoben",
		Description: "Neuer Termin",
		Date:        newDate,
		Location:    "Hamburg",
		Category:    models.CategoryPrivat,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Meeting verschoben", updated.Title)
	assert.Equal(t, "Hamburg", updated.Location)
	assert.Equal(t, models.CategoryPrivat, updated.Category)
	assert.True(t, newDate.Equal(updated.Date))

	// ID, владелец и CreatedAt неизменяемы
	assert.Equal(t, event.ID, updated.ID)
	assert.Equal(t, event.UserID, updated.UserID)
	assert.True(t, event.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	// Изменения действительно сохранены
	got, err := store.GetEventByID(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, "Meeting verschoben", got.Title)
	assert.Equal(t, event.UserID, got.UserID)
}

func TestStorage_UpdateEvent_NotFound(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.UpdateEvent(ctx, "no-such-event", storage.EventFields{
		Title: "Egal",
		Date:  time.Now().UTC(),
	})
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestStorage_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.CreateEvent(ctx, testEvent("event-1", "user-1", "Meeting")))

	err := store.DeleteEvent(ctx, "event-1")
	require.NoError(t, err)

	_, err = store.GetEventByID(ctx, "event-1")
	assert.ErrorIs(t, err, storage.ErrEventNotFound)

	// Повторное удаление — ErrEventNotFound
	err = store.DeleteEvent(ctx, "event-1")
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

// Конкурентные записи не теряются: каждая проходит через отдельную
// Update транзакцию с уникальным UUID ключом
func TestStorage_ConcurrentCreateEvents(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	const workers = 20

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			event := testEvent(uuid.NewString(), "user-1", fmt.Sprintf("Termin %d", n))
			errs <- store.CreateEvent(ctx, event)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	events, err := store.ListEventsByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, events, workers)

	// Все ID уникальны
	seen := make(map[string]bool, workers)
	for _, e := range events {
		assert.False(t, seen[e.ID], "duplicate event id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestStorage_ConcurrentUpdates_NoneLost(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.CreateEvent(ctx, testEvent("event-1", "user-1", "Meeting")))

	const workers = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.UpdateEvent(ctx, "event-1", storage.EventFields{
				Title:    fmt.Sprintf("Titel %d", n),
				Date:     time.Now().UTC(),
				Category: models.CategorySonstiges,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Запись осталась консистентной: владелец и ID не тронуты,
	// заголовок — от одного из writers
	got, err := store.GetEventByID(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Contains(t, got.Title, "Titel ")
}

func TestStorage_CreateEvent_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// Удаляем bucket events напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketEvents)
	})
	require.NoError(t, err)

	err = store.CreateEvent(ctx, testEvent("event-1", "user-1", "Meeting"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "events bucket not found")
}
