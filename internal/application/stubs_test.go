package application

import (
	"context"
	"strings"
	"time"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	repo "github.com/eventhub/event-management-backend/internal/domain/repository"
)

// stubUserRepo is an in-memory UserRepository for service tests.
type stubUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*entity.User), nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	u.ID = r.nextID
	r.nextID++
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == repo.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

var _ repo.UserRepository = (*stubUserRepo)(nil)

// stubEventRepo is an in-memory EventRepository.
type stubEventRepo struct {
	events  map[int64]*entity.Event
	nextID  int64
	updates int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[int64]*entity.Event), nextID: 1}
}

func (r *stubEventRepo) Create(_ context.Context, e *entity.Event) error {
	e.ID = r.nextID
	r.nextID++
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *stubEventRepo) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubEventRepo) Update(_ context.Context, e *entity.Event) error {
	if _, ok := r.events[e.ID]; !ok {
		return repo.ErrNotFound
	}
	r.updates++
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *stubEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *stubEventRepo) ListByStatus(_ context.Context, status entity.EventStatus, _ repo.PageRequest) ([]entity.Event, int64, error) {
	out := make([]entity.Event, 0)
	for _, e := range r.events {
		if e.Status == status {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubEventRepo) ListUpcoming(_ context.Context, _ repo.PageRequest) ([]entity.Event, int64, error) {
	out := make([]entity.Event, 0)
	now := time.Now()
	for _, e := range r.events {
		if e.Status == entity.EventPublished && e.StartDateTime.After(now) {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubEventRepo) Search(_ context.Context, keyword string, _ repo.PageRequest) ([]entity.Event, int64, error) {
	out := make([]entity.Event, 0)
	for _, e := range r.events {
		if e.Status == entity.EventPublished && strings.Contains(strings.ToLower(e.Title), strings.ToLower(keyword)) {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubEventRepo) ListByOrganizer(_ context.Context, organizerID int64) ([]entity.Event, error) {
	out := make([]entity.Event, 0)
	for _, e := range r.events {
		if e.OrganizerID == organizerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

var _ repo.EventRepository = (*stubEventRepo)(nil)

// stubBookingRepo is an in-memory BookingRepository.
type stubBookingRepo struct {
	bookings map[int64]*entity.Booking
	nextID   int64
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[int64]*entity.Booking), nextID: 1}
}

func (r *stubBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	b.ID = r.nextID
	r.nextID++
	now := time.Now()
	b.BookingDate = now
	b.UpdatedAt = now
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *stubBookingRepo) GetByID(_ context.Context, id int64) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *stubBookingRepo) List(_ context.Context, _ repo.PageRequest) ([]entity.Booking, int64, error) {
	out := make([]entity.Booking, 0)
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *stubBookingRepo) ListByUser(_ context.Context, userID int64) ([]entity.Booking, error) {
	out := make([]entity.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) ListByEvent(_ context.Context, eventID int64) ([]entity.Booking, error) {
	out := make([]entity.Booking, 0)
	for _, b := range r.bookings {
		if b.EventID == eventID {
			out = append(out, *b)
		}
	}
	return out, nil
}

var _ repo.BookingRepository = (*stubBookingRepo)(nil)
