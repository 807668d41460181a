package router

import (
	"github.com/eventhub/event-management-backend/internal/application"
	"github.com/eventhub/event-management-backend/internal/container"
	pginfra "github.com/eventhub/event-management-backend/internal/infrastructure/postgres"
	handlers "github.com/eventhub/event-management-backend/internal/interface/http"
	"github.com/eventhub/event-management-backend/internal/interface/middleware"
	"github.com/eventhub/event-management-backend/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	userRepo := pginfra.NewUserRepository(pool)
	eventRepo := pginfra.NewEventRepository(pool)
	categoryRepo := pginfra.NewCategoryRepository(pool)
	bookingRepo := pginfra.NewBookingRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger)
	eventSvc := application.NewEventService(eventRepo, container.GetRedis(), logger,
		container.GetES(), cfg.ESEventsIndex, container.GetGCS(), cfg.GCSBucket)
	categorySvc := application.NewCategoryService(categoryRepo)
	bookingSvc := application.NewBookingService(bookingRepo, eventRepo, userRepo,
		container.GetRabbitPub(), logger)

	// Authentication is soft-fail and global: every request under /api gets a
	// chance to carry a principal, and the per-route guards do the rejecting.
	r.Use(middleware.BearerAuth(container.GetJWT(), authSvc, logger))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(eventSvc, logger)))
	r.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(categorySvc, logger)))
	r.Add(modules.NewBookingModule(handlers.NewBookingHandler(bookingSvc, logger)))
}
