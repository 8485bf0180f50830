package notification

import (
	"errors"

	"go-coursecreator/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{
		service: service,
	}
}

// Preview godoc
// @Summary Preview a notification email
// @Description Render the subject and body the caller would receive for a message type
// @Tags notifications
// @Produce json
// @Param type path string true "Message type"
// @Param course_topic query string false "Course topic"
// @Param course_key query string false "Course key"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/notifications/preview/{type} [get]
func (c *NotificationController) Preview(ctx *fiber.Ctx) error {
	claims := middleware.CurrentUser(ctx)
	to := Recipient{UserID: claims.UserID, Email: claims.Email, Org: middleware.CurrentOrg(ctx)}

	n := Notification{Type: MessageType(ctx.Params("type")), To: to, Params: map[string]any{
		"course_topic":     ctx.Query("course_topic", "Sample course"),
		"course_key":       ctx.Query("course_key", "course-v1:org+101+run"),
		"course_name":      ctx.Query("course_topic", "Sample course"),
		"error_message":    "Sample error message",
		"progress_message": "Sample progress message",
	}}

	rendered, err := c.service.Preview(n)
	if err != nil {
		if errors.Is(err, ErrUnknownMessageType) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"message_type": n.Type,
		"to":           to.Email,
		"subject":      rendered.Subject,
		"body":         rendered.Body,
	})
}

// ListTypes godoc
// @Summary List notification message types
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications/types [get]
func (c *NotificationController) ListTypes(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"types": MessageTypes()})
}
