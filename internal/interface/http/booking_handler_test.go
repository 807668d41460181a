package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/event-management-backend/internal/application"
	"github.com/eventhub/event-management-backend/internal/domain/entity"
	repo "github.com/eventhub/event-management-backend/internal/domain/repository"
	"github.com/eventhub/event-management-backend/internal/interface/middleware"
)

// memBookingRepo backs booking handler tests without a database.
type memBookingRepo struct {
	bookings map[int64]*entity.Booking
	nextID   int64
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[int64]*entity.Booking), nextID: 1}
}

func (r *memBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id int64) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) List(_ context.Context, _ repo.PageRequest) ([]entity.Booking, int64, error) {
	out := make([]entity.Booking, 0)
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *memBookingRepo) ListByUser(_ context.Context, userID int64) ([]entity.Booking, error) {
	out := make([]entity.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByEvent(_ context.Context, eventID int64) ([]entity.Booking, error) {
	out := make([]entity.Booking, 0)
	for _, b := range r.bookings {
		if b.EventID == eventID {
			out = append(out, *b)
		}
	}
	return out, nil
}

var _ repo.BookingRepository = (*memBookingRepo)(nil)

func newBookingRouter(t *testing.T, p *entity.Principal) (*gin.Engine, *memEventRepo) {
	t.Helper()
	initTestValidation()

	bookings := newMemBookingRepo()
	events := newMemEventRepo()
	users := newMemUserRepo()
	logger := logrus.New()
	svc := application.NewBookingService(bookings, events, users, nil, logger)
	h := NewBookingHandler(svc, logger)

	r := gin.New()
	if p != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.CtxPrincipalKey, p)
			c.Next()
		})
	}
	g := r.Group("/api/bookings")
	g.POST("", h.Create)
	g.GET("/my-bookings", h.MyBookings)
	g.PUT("/:id/confirm", h.Confirm)
	g.PUT("/:id/cancel", h.Cancel)
	g.GET("/:id", h.Get)
	return r, events
}

func seedBookableEvent(t *testing.T, events *memEventRepo, price float64) *entity.Event {
	t.Helper()
	e := &entity.Event{
		Title:         "Go Conference",
		StartDateTime: time.Now().Add(24 * time.Hour),
		EndDateTime:   time.Now().Add(26 * time.Hour),
		TicketPrice:   price,
		Status:        entity.EventPublished,
		CategoryID:    1,
		OrganizerID:   1,
	}
	require.NoError(t, events.Create(context.Background(), e))
	return e
}

func TestBookingCreateAndAmount(t *testing.T) {
	member := &entity.Principal{ID: 42, Username: "johndoe", Roles: []string{entity.RoleUser}}
	r, events := newBookingRouter(t, member)
	e := seedBookableEvent(t, events, 25.50)

	b, _ := json.Marshal(map[string]any{"eventId": e.ID, "numberOfTickets": 3})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var booking entity.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	require.Equal(t, 76.50, booking.TotalAmount)
	require.Equal(t, entity.BookingPending, booking.Status)
	require.Equal(t, int64(42), booking.UserID)
}

func TestBookingCreateUnknownEvent(t *testing.T) {
	member := &entity.Principal{ID: 42, Username: "johndoe", Roles: []string{entity.RoleUser}}
	r, _ := newBookingRouter(t, member)

	b, _ := json.Marshal(map[string]any{"eventId": 9999, "numberOfTickets": 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingCreateRejectsZeroTickets(t *testing.T) {
	member := &entity.Principal{ID: 42, Username: "johndoe", Roles: []string{entity.RoleUser}}
	r, events := newBookingRouter(t, member)
	e := seedBookableEvent(t, events, 10)

	// gt=0 binding catches this before the service does.
	b, _ := json.Marshal(map[string]any{"eventId": e.ID, "numberOfTickets": 0})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingConfirmCancelFlow(t *testing.T) {
	member := &entity.Principal{ID: 42, Username: "johndoe", Roles: []string{entity.RoleUser}}
	r, events := newBookingRouter(t, member)
	e := seedBookableEvent(t, events, 10)

	b, _ := json.Marshal(map[string]any{"eventId": e.ID, "numberOfTickets": 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/bookings/1/confirm", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var booking entity.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	require.Equal(t, entity.BookingConfirmed, booking.Status)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/bookings/1/cancel", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	require.Equal(t, entity.BookingCancelled, booking.Status)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/bookings/999/confirm", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyBookingsOnlyOwn(t *testing.T) {
	member := &entity.Principal{ID: 42, Username: "johndoe", Roles: []string{entity.RoleUser}}
	r, events := newBookingRouter(t, member)
	e := seedBookableEvent(t, events, 10)

	b, _ := json.Marshal(map[string]any{"eventId": e.ID, "numberOfTickets": 1})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings/my-bookings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var mine []entity.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	require.Equal(t, int64(42), mine[0].UserID)
}
