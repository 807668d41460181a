package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	repo "github.com/eventhub/event-management-backend/internal/domain/repository"
	"github.com/eventhub/event-management-backend/pkg/helpers"
	"github.com/eventhub/event-management-backend/pkg/mailer"
)

var ErrInvalidTicketCount = errors.New("number of tickets must be positive")

// BookingService implements ticket bookings and their status transitions.
// Pub is optional; when set, confirmations and cancellations enqueue a
// notification email job.
type BookingService struct {
	Bookings repo.BookingRepository
	Events   repo.EventRepository
	Users    repo.UserRepository
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewBookingService(bookings repo.BookingRepository, events repo.EventRepository, users repo.UserRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *BookingService {
	return &BookingService{Bookings: bookings, Events: events, Users: users, Pub: pub, Logger: logger}
}

// Create books tickets for a user. The total amount is the event's ticket
// price multiplied by the ticket count, computed here and never recomputed.
func (s *BookingService) Create(ctx context.Context, eventID, userID int64, tickets int) (*entity.Booking, error) {
	if tickets <= 0 {
		return nil, ErrInvalidTicketCount
	}
	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	b := &entity.Booking{
		EventID:         e.ID,
		UserID:          userID,
		NumberOfTickets: tickets,
		TotalAmount:     e.TicketPrice * float64(tickets),
		Status:          entity.BookingPending,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	return s.Bookings.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context, pr repo.PageRequest) ([]entity.Booking, int64, error) {
	return s.Bookings.List(ctx, pr)
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]entity.Booking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}

func (s *BookingService) ListByEvent(ctx context.Context, eventID int64) ([]entity.Booking, error) {
	if _, err := s.Events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.Bookings.ListByEvent(ctx, eventID)
}

func (s *BookingService) Confirm(ctx context.Context, id int64) (*entity.Booking, error) {
	return s.setStatus(ctx, id, entity.BookingConfirmed)
}

func (s *BookingService) Cancel(ctx context.Context, id int64) (*entity.Booking, error) {
	return s.setStatus(ctx, id, entity.BookingCancelled)
}

func (s *BookingService) setStatus(ctx context.Context, id int64, status entity.BookingStatus) (*entity.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Status = status
	if err := s.Bookings.Update(ctx, b); err != nil {
		return nil, err
	}
	s.notify(ctx, b)
	return b, nil
}

// notify enqueues a status email, best-effort.
func (s *BookingService) notify(ctx context.Context, b *entity.Booking) {
	if s.Pub == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, b.UserID)
	if err != nil {
		return
	}
	e, err := s.Events.GetByID(ctx, b.EventID)
	if err != nil {
		return
	}

	kind := "booking_confirmed"
	subject := fmt.Sprintf("Your booking for %q is confirmed", e.Title)
	if b.Status == entity.BookingCancelled {
		kind = "booking_cancelled"
		subject = fmt.Sprintf("Your booking for %q was cancelled", e.Title)
	}
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: subject,
		Text: fmt.Sprintf("Hi %s,\n\nBooking #%d for %q: %d ticket(s), total %.2f. Status: %s.\n",
			u.FirstName, b.ID, e.Title, b.NumberOfTickets, b.TotalAmount, b.Status),
		Kind: kind,
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("booking_id", b.ID).Warn("booking email enqueue failed")
	}
}
