package course_import

import (
	"go-coursecreator/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type ImportApi struct {
	controller *ImportController
}

func NewImportApi(controller *ImportController) api.Route {
	return &ImportApi{controller: controller}
}

// Setup registers the webhook without auth middleware; the shared secret
// in the payload is checked by the controller.
func (h *ImportApi) Setup(app *fiber.App) {
	app.Post("/import-course", h.controller.ImportCourse)
}
