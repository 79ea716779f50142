package routes

import (
	"log"

	"alumx/internal/config"
	"alumx/internal/database"
	"alumx/internal/delivery/http/handler"
	v1 "alumx/internal/delivery/http/routes/v1"
	"alumx/internal/usecase"
	"alumx/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
}

func NewRegistry() *Registry {
	return &Registry{health: handler.NewHealthHandler()}
}

func (r *Registry) Register(app *fiber.App, cfg config.Config, db database.DB, cache usecase.ProfileCache, hub *ws.Hub, logger *log.Logger) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	if hub != nil {
		wsHandler := ws.NewHandler(hub, logger)
		app.Get("/ws", wsHandler.HandleEventsWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), cfg, db, cache)
}
