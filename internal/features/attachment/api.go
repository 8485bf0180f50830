package attachment

import (
	"go-coursecreator/internal/common/api"
	"go-coursecreator/internal/config"
	"go-coursecreator/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AttachmentApi struct {
	controller *AttachmentController
	config     *config.Config
}

func NewAttachmentApi(controller *AttachmentController, config *config.Config) api.Route {
	return &AttachmentApi{
		controller: controller,
		config:     config,
	}
}

func (h *AttachmentApi) Setup(app *fiber.App) {
	attachments := app.Group("/attachments",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.OrgMiddleware(h.config.DefaultOrg),
	)

	attachments.Post("/bulk-delete", h.controller.BulkDeleteAttachments)
	attachments.Post("/", h.controller.UploadAttachment)
	attachments.Get("/", h.controller.ListAttachments)
	attachments.Get("/:id", h.controller.GetAttachment)
	attachments.Patch("/:id", h.controller.UpdateAttachment)
	attachments.Delete("/:id", h.controller.DeleteAttachment)

	// Stored files are public so file_url can be fetched without a token.
	app.Static(h.config.FSURL, h.config.FSPath)
}
