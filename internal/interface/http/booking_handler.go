package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventhub/event-management-backend/internal/application"
	"github.com/eventhub/event-management-backend/internal/domain/entity"
	"github.com/eventhub/event-management-backend/internal/domain/repository"
	"github.com/eventhub/event-management-backend/internal/interface/middleware"
	"github.com/eventhub/event-management-backend/pkg/response"
	"github.com/eventhub/event-management-backend/pkg/validation"
)

type BookingHandler struct {
	Svc    *application.BookingService
	Logger *logrus.Logger
}

func NewBookingHandler(svc *application.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

type bookingTransition func(ctx context.Context, id int64) (*entity.Booking, error)

type bookingRequest struct {
	EventID         int64 `json:"eventId" binding:"required"`
	NumberOfTickets int   `json:"numberOfTickets" binding:"required,gt=0"`
}

// List GET /api/bookings (admin)
func (h *BookingHandler) List(c *gin.Context) {
	pr := pageRequest(c, "bookingDate", "desc")
	bookings, total, err := h.Svc.List(c.Request.Context(), pr)
	if err != nil {
		h.Logger.WithError(err).Error("list bookings failed")
		response.Message(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, response.NewPage(bookings, total, pr.Page, pr.Size))
}

// Get GET /api/bookings/:id (admin)
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.Message(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

// Create POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	b, err := h.Svc.Create(c.Request.Context(), req.EventID, p.ID, req.NumberOfTickets)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(c)
		case errors.Is(err, application.ErrInvalidTicketCount):
			response.Message(c, http.StatusBadRequest, "number of tickets must be positive")
		default:
			h.Logger.WithError(err).Error("create booking failed")
			response.Message(c, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}
	c.JSON(http.StatusOK, b)
}

// Confirm PUT /api/bookings/:id/confirm (admin)
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.Svc.Confirm)
}

// Cancel PUT /api/bookings/:id/cancel (admin)
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.Svc.Cancel)
}

func (h *BookingHandler) transition(c *gin.Context, fn bookingTransition) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := fn(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.Message(c, http.StatusInternalServerError, "failed to update booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

// MyBookings GET /api/bookings/my-bookings
func (h *BookingHandler) MyBookings(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	bookings, err := h.Svc.ListByUser(c.Request.Context(), p.ID)
	if err != nil {
		h.Logger.WithError(err).Error("list my bookings failed")
		response.Message(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ByEvent GET /api/bookings/event/:eventId (admin)
func (h *BookingHandler) ByEvent(c *gin.Context) {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return
	}
	bookings, err := h.Svc.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.Message(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}
