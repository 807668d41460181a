package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventhub/event-management-backend/internal/application"
	"github.com/eventhub/event-management-backend/internal/domain/entity"
	"github.com/eventhub/event-management-backend/internal/domain/repository"
	"github.com/eventhub/event-management-backend/internal/interface/middleware"
	"github.com/eventhub/event-management-backend/pkg/response"
	"github.com/eventhub/event-management-backend/pkg/validation"
)

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type eventRequest struct {
	Title         string             `json:"title" binding:"required"`
	Description   string             `json:"description"`
	StartDateTime time.Time          `json:"startDateTime" binding:"required"`
	EndDateTime   time.Time          `json:"endDateTime" binding:"required"`
	Location      string             `json:"location" binding:"required"`
	MaxAttendees  int                `json:"maxAttendees" binding:"gte=0"`
	TicketPrice   float64            `json:"ticketPrice" binding:"gte=0"`
	ImageURL      string             `json:"imageUrl"`
	Status        entity.EventStatus `json:"status"`
	CategoryID    int64              `json:"categoryId"`
}

func pageRequest(c *gin.Context, defSortBy, defSortDir string) repository.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return repository.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  c.DefaultQuery("sortBy", defSortBy),
		SortDir: c.DefaultQuery("sortDir", defSortDir),
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Message(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (e *eventRequest) toEntity() *entity.Event {
	return &entity.Event{
		Title:         e.Title,
		Description:   e.Description,
		StartDateTime: e.StartDateTime,
		EndDateTime:   e.EndDateTime,
		Location:      e.Location,
		MaxAttendees:  e.MaxAttendees,
		TicketPrice:   e.TicketPrice,
		ImageURL:      e.ImageURL,
		Status:        e.Status,
		CategoryID:    e.CategoryID,
	}
}

// List GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	pr := pageRequest(c, "startDateTime", "asc")
	events, total, err := h.Svc.ListPublished(c.Request.Context(), pr)
	if err != nil {
		h.Logger.WithError(err).Error("list events failed")
		response.Message(c, http.StatusInternalServerError, "failed to list events")
		return
	}
	c.JSON(http.StatusOK, response.NewPage(events, total, pr.Page, pr.Size))
}

// Upcoming GET /api/events/upcoming
func (h *EventHandler) Upcoming(c *gin.Context) {
	pr := pageRequest(c, "startDateTime", "asc")
	events, total, err := h.Svc.ListUpcoming(c.Request.Context(), pr)
	if err != nil {
		h.Logger.WithError(err).Error("list upcoming events failed")
		response.Message(c, http.StatusInternalServerError, "failed to list events")
		return
	}
	c.JSON(http.StatusOK, response.NewPage(events, total, pr.Page, pr.Size))
}

// Pending GET /api/events/pending (admin)
func (h *EventHandler) Pending(c *gin.Context) {
	pr := pageRequest(c, "createdAt", "desc")
	events, total, err := h.Svc.ListPending(c.Request.Context(), pr)
	if err != nil {
		h.Logger.WithError(err).Error("list pending events failed")
		response.Message(c, http.StatusInternalServerError, "failed to list events")
		return
	}
	c.JSON(http.StatusOK, response.NewPage(events, total, pr.Page, pr.Size))
}

// Search GET /api/events/search?keyword=
func (h *EventHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		response.Message(c, http.StatusBadRequest, "keyword is required")
		return
	}
	pr := pageRequest(c, "startDateTime", "asc")
	events, total, err := h.Svc.Search(c.Request.Context(), keyword, pr)
	if err != nil {
		h.Logger.WithError(err).Error("event search failed")
		response.Message(c, http.StatusInternalServerError, "search failed")
		return
	}
	c.JSON(http.StatusOK, response.NewPage(events, total, pr.Page, pr.Size))
}

// Get GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	e, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.Message(c, http.StatusInternalServerError, "failed to load event")
		return
	}
	c.JSON(http.StatusOK, e)
}

// Create POST /api/events (admin)
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	e, err := h.Svc.Create(c.Request.Context(), req.toEntity(), p.ID)
	if err != nil {
		h.Logger.WithError(err).Error("create event failed")
		response.Message(c, http.StatusInternalServerError, "failed to create event")
		return
	}
	c.JSON(http.StatusOK, e)
}

// Submit POST /api/events/submit (user/organizer/admin) — lands in PENDING.
func (h *EventHandler) Submit(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	e, err := h.Svc.Submit(c.Request.Context(), req.toEntity(), p.ID)
	if err != nil {
		h.Logger.WithError(err).Error("submit event failed")
		response.Message(c, http.StatusInternalServerError, "failed to submit event")
		return
	}
	c.JSON(http.StatusOK, e)
}

// Update PUT /api/events/:id (admin)
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "details": validation.ToDetails(err)})
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), id, application.UpdateEventInput{
		Title:         req.Title,
		Description:   req.Description,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
		Location:      req.Location,
		MaxAttendees:  req.MaxAttendees,
		TicketPrice:   req.TicketPrice,
		ImageURL:      req.ImageURL,
		Status:        req.Status,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.Message(c, http.StatusInternalServerError, "failed to update event")
		return
	}
	c.JSON(http.StatusOK, e)
}

// Delete DELETE /api/events/:id (admin)
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.Message(c, http.StatusInternalServerError, "failed to delete event")
		return
	}
	c.Status(http.StatusOK)
}

// MyEvents GET /api/events/my-events
func (h *EventHandler) MyEvents(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	events, err := h.Svc.ListByOrganizer(c.Request.Context(), p.ID)
	if err != nil {
		h.Logger.WithError(err).Error("list my events failed")
		response.Message(c, http.StatusInternalServerError, "failed to list events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// Approve PUT /api/events/:id/approve (admin)
func (h *EventHandler) Approve(c *gin.Context) {
	h.moderate(c, h.Svc.Approve)
}

// Reject PUT /api/events/:id/reject (admin)
func (h *EventHandler) Reject(c *gin.Context) {
	h.moderate(c, h.Svc.Reject)
}

func (h *EventHandler) moderate(c *gin.Context, fn func(ctx context.Context, id int64) (*entity.Event, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	e, err := fn(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.Message(c, http.StatusInternalServerError, "failed to update event")
		return
	}
	c.JSON(http.StatusOK, e)
}

// UploadImage POST /api/events/:id/image (admin), multipart field "image".
func (h *EventHandler) UploadImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		response.Message(c, http.StatusBadRequest, "image file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Message(c, http.StatusBadRequest, "could not read image")
		return
	}
	defer func() { _ = src.Close() }()

	e, err := h.Svc.UploadImage(c.Request.Context(), id, src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c)
			return
		}
		h.Logger.WithError(err).Error("event image upload failed")
		response.Message(c, http.StatusInternalServerError, "image upload failed")
		return
	}
	c.JSON(http.StatusOK, e)
}
