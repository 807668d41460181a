package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	handlers "github.com/eventhub/event-management-backend/internal/interface/http"
	"github.com/eventhub/event-management-backend/internal/interface/middleware"
)

type CategoryModule struct {
	Handler *handlers.CategoryHandler
}

func NewCategoryModule(h *handlers.CategoryHandler) *CategoryModule {
	return &CategoryModule{Handler: h}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")

	categories.GET("", m.Handler.List)
	categories.GET("/:id", m.Handler.Get)

	admin := middleware.RequireRoles(entity.RoleAdmin)
	categories.POST("", admin, m.Handler.Create)
	categories.PUT("/:id", admin, m.Handler.Update)
	categories.DELETE("/:id", admin, m.Handler.Delete)
}
