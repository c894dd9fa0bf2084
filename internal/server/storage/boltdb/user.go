package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/terminplaner/internal/models"
	"github.com/iudanet/terminplaner/internal/server/storage"
)

// storedUser is the persisted form of models.User.
// The model hides PasswordHash from JSON with json:"-", which is right
// for API responses but would drop the hash from storage, so the hash
// gets an explicit field here.
type storedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	ProfileName  string    `json:"profileName"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toStored(u *models.User) storedUser {
	return storedUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		ProfileName:  u.ProfileName,
		CreatedAt:    u.CreatedAt,
	}
}

func (su storedUser) toModel() *models.User {
	return &models.User{
		ID:           su.ID,
		Username:     su.Username,
		Email:        su.Email,
		PasswordHash: su.PasswordHash,
		ProfileName:  su.ProfileName,
		CreatedAt:    su.CreatedAt,
	}
}

// CreateUser stores a new user.
// Username uniqueness is enforced through the usernames index bucket
// inside the same transaction as the insert, so two concurrent
// registrations with the same name cannot both succeed.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		users := tx.Bucket(bucketUsers)
		usernames := tx.Bucket(bucketUsernames)
		if users == nil || usernames == nil {
			return fmt.Errorf("storage buckets not found")
		}

		// Проверяем уникальность username внутри транзакции
		if usernames.Get([]byte(user.Username)) != nil {
			return storage.ErrUserAlreadyExists
		}

		data, err := json.Marshal(toStored(user))
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}

		if err := users.Put([]byte(user.ID), data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		if err := usernames.Put([]byte(user.Username), []byte(user.ID)); err != nil {
			return fmt.Errorf("failed to save username index: %w", err)
		}

		return nil
	})
}

// GetUserByUsername retrieves user by username via the index bucket
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		users := tx.Bucket(bucketUsers)
		usernames := tx.Bucket(bucketUsernames)
		if users == nil || usernames == nil {
			return fmt.Errorf("storage buckets not found")
		}

		id := usernames.Get([]byte(username))
		if id == nil {
			return storage.ErrUserNotFound
		}

		data := users.Get(id)
		if data == nil {
			// индекс есть, а записи нет: поврежденное хранилище
			return fmt.Errorf("username index points to missing user %q", id)
		}

		var su storedUser
		if err := json.Unmarshal(data, &su); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		user = su.toModel()

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		users := tx.Bucket(bucketUsers)
		if users == nil {
			return fmt.Errorf("users bucket not found")
		}

		data := users.Get([]byte(userID))
		if data == nil {
			return storage.ErrUserNotFound
		}

		var su storedUser
		if err := json.Unmarshal(data, &su); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}
		user = su.toModel()

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}
