package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/event-management-backend/internal/container"
	"github.com/eventhub/event-management-backend/internal/domain/entity"
	handlers "github.com/eventhub/event-management-backend/internal/interface/http"
	"github.com/eventhub/event-management-backend/internal/interface/middleware"
)

// EventModule wires event browsing, moderation, and organizer routes.
// Public: list, upcoming, search, get by id.
// USER/ADMIN/ORGANIZER: my-events, submit.
// ADMIN: create, update, delete, pending, approve, reject, image upload.
type EventModule struct {
	Handler *handlers.EventHandler
}

func NewEventModule(h *handlers.EventHandler) *EventModule {
	return &EventModule{Handler: h}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	events := rg.Group("/events")

	events.GET("", m.Handler.List)
	events.GET("/upcoming", m.Handler.Upcoming)
	events.GET("/search", searchLimiter, m.Handler.Search)

	member := middleware.RequireRoles(entity.RoleUser, entity.RoleAdmin, entity.RoleOrganizer)
	events.GET("/my-events", member, m.Handler.MyEvents)
	events.POST("/submit", member, m.Handler.Submit)

	admin := middleware.RequireRoles(entity.RoleAdmin)
	events.GET("/pending", admin, m.Handler.Pending)
	events.POST("", admin, m.Handler.Create)
	events.PUT("/:id", admin, m.Handler.Update)
	events.DELETE("/:id", admin, m.Handler.Delete)
	events.PUT("/:id/approve", admin, m.Handler.Approve)
	events.PUT("/:id/reject", admin, m.Handler.Reject)
	events.POST("/:id/image", admin, m.Handler.UploadImage)

	// Registered last so it does not shadow the static paths above.
	events.GET("/:id", m.Handler.Get)
}
