package notification

import (
	"go-coursecreator/internal/common/api"
	"go-coursecreator/internal/config"
	"go-coursecreator/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	controller *NotificationController
	config     *config.Config
}

func NewNotificationApi(controller *NotificationController, config *config.Config) api.Route {
	return &NotificationApi{
		controller: controller,
		config:     config,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notifications",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.OrgMiddleware(h.config.DefaultOrg),
	)

	group.Get("/types", h.controller.ListTypes)
	group.Get("/preview/:type", h.controller.Preview)
}
