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

// CreateEvent stores a new event
func (s *Storage) CreateEvent(ctx context.Context, event *models.Event) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)
		if bucket == nil {
			return fmt.Errorf("events bucket not found")
		}

		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		if err := bucket.Put([]byte(event.ID), data); err != nil {
			return fmt.Errorf("failed to save event: %w", err)
		}

		return nil
	})
}

// GetEventByID retrieves event by ID
func (s *Storage) GetEventByID(ctx context.Context, eventID string) (*models.Event, error) {
	var event *models.Event

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)
		if bucket == nil {
			return fmt.Errorf("events bucket not found")
		}

		data := bucket.Get([]byte(eventID))
		if data == nil {
			return storage.ErrEventNotFound
		}

		event = &models.Event{}
		if err := json.Unmarshal(data, event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return event, nil
}

// ListEventsByUser returns all events owned by the given user
func (s *Storage) ListEventsByUser(ctx context.Context, userID string) ([]*models.Event, error) {
	events := make([]*models.Event, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)
		if bucket == nil {
			return fmt.Errorf("events bucket not found")
		}

		// Итерируемся по всем событиям и фильтруем по владельцу
		return bucket.ForEach(func(k, v []byte) error {
			event := &models.Event{}
			if err := json.Unmarshal(v, event); err != nil {
				return fmt.Errorf("failed to unmarshal event: %w", err)
			}

			if event.UserID == userID {
				events = append(events, event)
			}

			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return events, nil
}

// UpdateEvent merges the mutable fields into the stored event.
// The read-merge-write cycle runs in one Update transaction, so a
// concurrent update cannot be lost. ID, UserID and CreatedAt always
// come from the stored record, never from the caller.
func (s *Storage) UpdateEvent(ctx context.Context, eventID string, fields storage.EventFields) (*models.Event, error) {
	var event *models.Event

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)
		if bucket == nil {
			return fmt.Errorf("events bucket not found")
		}

		data := bucket.Get([]byte(eventID))
		if data == nil {
			return storage.ErrEventNotFound
		}

		event = &models.Event{}
		if err := json.Unmarshal(data, event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}

		event.Title = fields.Title
		event.Description = fields.Description
		event.Date = fields.Date
		event.Location = fields.Location
		event.Category = fields.Category
		event.UpdatedAt = time.Now().UTC()

		updated, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		if err := bucket.Put([]byte(eventID), updated); err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return event, nil
}

// DeleteEvent removes the event
func (s *Storage) DeleteEvent(ctx context.Context, eventID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)
		if bucket == nil {
			return fmt.Errorf("events bucket not found")
		}

		if bucket.Get([]byte(eventID)) == nil {
			return storage.ErrEventNotFound
		}

		if err := bucket.Delete([]byte(eventID)); err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}

		return nil
	})
}
