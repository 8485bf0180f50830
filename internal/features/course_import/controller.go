package course_import

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go-coursecreator/internal/features/user"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ImportController struct {
	Service ImportService
	Logger  *zap.Logger
}

func NewImportController(service ImportService, logger *zap.Logger) *ImportController {
	return &ImportController{
		Service: service,
		Logger:  logger,
	}
}

func reject(c *fiber.Ctx, status int, message string) error {
	if status == fiber.StatusUnauthorized {
		recordImport("unauthorized")
	} else {
		recordImport("rejected")
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// ImportCourse godoc
// @Summary Import course archive
// @Description Webhook receiving a course archive (.tar.gz) and a JSON control payload, or a JSON webhook.test event
// @Tags import
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param payload formData string false "JSON payload with data.api_key, data.user_email and data.course_key"
// @Param course_file formData file false "Course archive"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /import-course/ [post]
func (ctrl *ImportController) ImportCourse(c *fiber.Ctx) error {
	if strings.Contains(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		if payload, err := ParsePayload(c.Body()); err == nil && payload.Event == testEvent {
			return ctrl.handleTest(c, payload)
		}
	}

	raw := c.FormValue("payload")
	if raw == "" {
		return reject(c, fiber.StatusBadRequest, "Missing 'payload'")
	}
	payload, err := ParsePayload([]byte(raw))
	if err != nil {
		return reject(c, fiber.StatusBadRequest, "Invalid 'payload' JSON")
	}

	if err := ctrl.Service.Authorize(payload.Key()); err != nil {
		ctrl.Logger.Warn("Rejected course import webhook", zap.String("ip", c.IP()))
		return reject(c, fiber.StatusUnauthorized, "Invalid API key")
	}

	archive := formFile(c, "course_file", "file")
	if archive == nil {
		return reject(c, fiber.StatusBadRequest, "Missing 'course_file'")
	}

	email := payload.Email(c.FormValue("user_email"))
	rawKey := payload.CourseKeyString()
	if email == "" || rawKey == "" {
		return reject(c, fiber.StatusBadRequest, "Missing required fields in payload: user_email, course_key")
	}

	key, err := ParseCourseKey(rawKey)
	if err != nil {
		return reject(c, fiber.StatusBadRequest, "Invalid course_key format. Expected: course-v1:{org}+{number}+{run}")
	}

	filename := filepath.Base(archive.Filename)
	if archive.Filename == "" || filename == "." || filename == "/" {
		filename = defaultFilename
	}
	if !strings.HasSuffix(filename, archiveExtension) {
		return reject(c, fiber.StatusBadRequest, "File must be a .tar.gz")
	}

	content, err := archive.Open()
	if err != nil {
		return ctrl.internalError(c, err)
	}
	defer content.Close()

	result, err := ctrl.Service.Import(c.UserContext(), ImportRequest{
		UserEmail: email,
		CourseKey: key,
		Filename:  filename,
	}, content)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return reject(c, fiber.StatusBadRequest, "No user found with email: "+email)
	case errors.Is(err, user.ErrAmbiguousUser):
		return reject(c, fiber.StatusBadRequest, "Multiple users found with email: "+email+". Provide a unique email.")
	case err != nil:
		return ctrl.internalError(c, err)
	}

	recordImport("success")
	return c.JSON(result)
}

func (ctrl *ImportController) handleTest(c *fiber.Ctx, payload *WebhookPayload) error {
	if err := ctrl.Service.Authorize(payload.Key()); err != nil {
		return reject(c, fiber.StatusUnauthorized, "Invalid API key")
	}
	return c.JSON(fiber.Map{"status": "ok", "message": "Webhook test successful"})
}

func (ctrl *ImportController) internalError(c *fiber.Ctx, err error) error {
	recordImport("error")
	ctrl.Logger.Error("Error occurred while importing course", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// formFile returns the first present multipart file among names
func formFile(c *fiber.Ctx, names ...string) *multipart.FileHeader {
	for _, name := range names {
		if fh, err := c.FormFile(name); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}
