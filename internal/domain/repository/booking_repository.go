package repository

import (
	"context"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
)

// BookingRepository defines the interface for booking-related database operations.
type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	GetByID(ctx context.Context, id int64) (*entity.Booking, error)
	Update(ctx context.Context, b *entity.Booking) error
	List(ctx context.Context, pr PageRequest) ([]entity.Booking, int64, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Booking, error)
	ListByEvent(ctx context.Context, eventID int64) ([]entity.Booking, error)
}
