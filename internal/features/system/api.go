package system

import (
	"go-coursecreator/internal/common/api"
	"go-coursecreator/internal/config"
	"go-coursecreator/internal/middleware"
	"go-coursecreator/internal/observability"

	"github.com/gofiber/fiber/v2"
)

type SystemApi struct {
	controller *SystemController
	config     *config.Config
}

func NewSystemApi(controller *SystemController, cfg *config.Config) api.Route {
	return &SystemApi{
		controller: controller,
		config:     cfg,
	}
}

func (h *SystemApi) Setup(app *fiber.App) {
	app.Get("/health", h.controller.Health)
	app.Get("/metrics", observability.MetricsHandler())

	auth := middleware.AuthMiddleware(h.config.SkipAuth)
	app.Get("/hello", auth, h.controller.Hello)

	debug := app.Group("/api/debug", auth, middleware.OrgMiddleware(h.config.DefaultOrg))
	debug.Get("/me", h.controller.CurrentUser)
}
