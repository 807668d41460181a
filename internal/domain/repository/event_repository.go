package repository

import (
	"context"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
)

// PageRequest carries pagination and sorting parameters for list queries.
// Page is zero-based, matching the API surface.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string // "asc" or "desc"
}

// EventRepository defines the interface for event-related database operations.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id int64) error
	ListByStatus(ctx context.Context, status entity.EventStatus, pr PageRequest) ([]entity.Event, int64, error)
	ListUpcoming(ctx context.Context, pr PageRequest) ([]entity.Event, int64, error)
	Search(ctx context.Context, keyword string, pr PageRequest) ([]entity.Event, int64, error)
	ListByOrganizer(ctx context.Context, organizerID int64) ([]entity.Event, error)
}
