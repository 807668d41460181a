package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/event-management-backend/internal/container"
	"github.com/eventhub/event-management-backend/internal/domain/entity"
	handlers "github.com/eventhub/event-management-backend/internal/interface/http"
	"github.com/eventhub/event-management-backend/internal/interface/middleware"
)

type BookingModule struct {
	Handler *handlers.BookingHandler
}

func NewBookingModule(h *handlers.BookingHandler) *BookingModule {
	return &BookingModule{Handler: h}
}

func (m *BookingModule) Register(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")

	member := middleware.RequireRoles(entity.RoleUser, entity.RoleAdmin, entity.RoleOrganizer)
	createLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByPrincipal(), nil)
	bookings.POST("", member, createLimiter, m.Handler.Create)
	bookings.GET("/my-bookings", member, m.Handler.MyBookings)

	admin := middleware.RequireRoles(entity.RoleAdmin)
	bookings.GET("", admin, m.Handler.List)
	bookings.GET("/event/:eventId", admin, m.Handler.ByEvent)
	bookings.PUT("/:id/confirm", admin, m.Handler.Confirm)
	bookings.PUT("/:id/cancel", admin, m.Handler.Cancel)
	bookings.GET("/:id", admin, m.Handler.Get)
}
