package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/terminplaner/internal/models"
	"github.com/iudanet/terminplaner/internal/server/storage"
)

// создаём тестовое BoltDB хранилище
func createTestStorage(t *testing.T) (*Storage, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "terminplaner_test.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		// Закрываем БД
		require.NoError(t, store.Close())
		require.NoError(t, os.RemoveAll(tmpDir))
	}

	return store, cleanup
}

func testUser(id, username string) *models.User {
	return &models.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$fakehashforstoragetests000000000000000000000000000000",
		ProfileName:  "Max Mustermann",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestStorage_CreateAndGetUser(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	user := testUser("user-id-1", "maxmuster")

	err := store.CreateUser(ctx, user)
	require.NoError(t, err)

	// Поиск по username через индекс
	got, err := store.GetUserByUsername(ctx, "maxmuster")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.ProfileName, got.ProfileName)

	// Хеш пароля должен пережить сериализацию в storage,
	// несмотря на json:"-" в модели
	assert.Equal(t, user.PasswordHash, got.PasswordHash)

	// Поиск по ID
	got, err = store.GetUserByID(ctx, "user-id-1")
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
}

func TestStorage_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetUserByUsername(ctx, "niemand")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = store.GetUserByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.CreateUser(ctx, testUser("user-id-1", "maxmuster")))

	// Второй пользователь с тем же username отклоняется внутри транзакции
	err := store.CreateUser(ctx, testUser("user-id-2", "maxmuster"))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)

	// Первая запись не затронута
	got, err := store.GetUserByUsername(ctx, "maxmuster")
	require.NoError(t, err)
	assert.Equal(t, "user-id-1", got.ID)
}

func TestStorage_CreateUser_ConcurrentSameUsername(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	const workers = 10

	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			errs <- store.CreateUser(ctx, testUser(
				"user-id-"+string(rune('a'+n)), "maxmuster"))
		}(i)
	}

	// Ровно одна регистрация должна пройти, остальные получают
	// ErrUserAlreadyExists
	succeeded := 0
	for i := 0; i < workers; i++ {
		err := <-errs
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)
}

func TestStorage_CreateUser_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// Удаляем bucket users напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketUsers)
	})
	require.NoError(t, err)

	err = store.CreateUser(ctx, testUser("user-id-1", "maxmuster"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "buckets not found")
}
