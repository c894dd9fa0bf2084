package storage

import (
	"context"
	"time"

	"github.com/iudanet/terminplaner/internal/models"
)

// EventFields carries the mutable fields of an event.
// ID, UserID and CreatedAt are deliberately absent: ownership can
// never be reassigned through an update.
type EventFields struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Category    models.Category
}

// EventStorage defines interface for event data persistence
type EventStorage interface {
	// CreateEvent stores a new event
	CreateEvent(ctx context.Context, event *models.Event) error

	// GetEventByID retrieves event by ID
	// Returns ErrEventNotFound if event doesn't exist
	GetEventByID(ctx context.Context, eventID string) (*models.Event, error)

	// ListEventsByUser returns all events owned by the given user,
	// in storage iteration order (callers sort if they need ordering)
	ListEventsByUser(ctx context.Context, userID string) ([]*models.Event, error)

	// UpdateEvent merges the mutable fields into the stored event
	// inside a single transaction, preserving ID, UserID and CreatedAt
	// and stamping UpdatedAt. Returns the updated event, or
	// ErrEventNotFound if the event doesn't exist.
	UpdateEvent(ctx context.Context, eventID string, fields EventFields) (*models.Event, error)

	// DeleteEvent removes the event.
	// Returns ErrEventNotFound if the event doesn't exist.
	DeleteEvent(ctx context.Context, eventID string) error
}
