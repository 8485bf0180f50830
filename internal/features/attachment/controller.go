package attachment

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"go-coursecreator/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AttachmentController struct {
	Service AttachmentService
	Logger  *zap.Logger
}

func NewAttachmentController(service AttachmentService, logger *zap.Logger) *AttachmentController {
	return &AttachmentController{
		Service: service,
		Logger:  logger,
	}
}

func failed(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message, "status": "failed"})
}

// parseID treats a malformed id like a missing one
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

// UploadAttachment godoc
// @Summary Upload attachment
// @Description Upload a source document for AI course creation
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param description formData string false "Description"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /attachments/ [post]
func (ctrl *AttachmentController) UploadAttachment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data",
			"errors":  fiber.Map{"file": []string{"No file was submitted."}},
			"status":  "failed",
		})
	}

	description := c.FormValue("description")
	filename := filepath.Base(fileHeader.Filename)

	if err := ValidateUpload(filename, fileHeader.Size, description); err != nil {
		if errors.Is(err, ErrUnsupportedFileType) {
			return failed(c, fiber.StatusBadRequest, err.Error())
		}
		field := "file"
		if errors.Is(err, ErrDescriptionTooLong) {
			field = "description"
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data",
			"errors":  fiber.Map{field: []string{err.Error()}},
			"status":  "failed",
		})
	}

	content, err := fileHeader.Open()
	if err != nil {
		ctrl.Logger.Error("Error opening uploaded file", zap.Error(err))
		return failed(c, fiber.StatusInternalServerError, err.Error())
	}
	defer content.Close()

	attachment, err := ctrl.Service.Upload(c.UserContext(), UploadInput{
		Filename:    filename,
		Size:        fileHeader.Size,
		Content:     content,
		Description: description,
		UserID:      user.UserID,
		Username:    user.Username,
		Org:         middleware.CurrentOrg(c),
	})
	if err != nil {
		ctrl.Logger.Error("Error uploading attachment", zap.Error(err))
		return failed(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Attachment uploaded successfully",
		"status":     "success",
		"attachment": attachment.ToDetail(""),
	})
}

// ListAttachments godoc
// @Summary List attachments
// @Description List the caller's attachments in the current organization
// @Tags attachments
// @Produce json
// @Param file_type query string false "Case-insensitive MIME type substring"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /attachments/ [get]
func (ctrl *AttachmentController) ListAttachments(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	attachments, err := ctrl.Service.List(c.UserContext(), user.UserID, middleware.CurrentOrg(c), c.Query("file_type"))
	if err != nil {
		ctrl.Logger.Error("Error listing attachments", zap.Error(err))
		return failed(c, fiber.StatusInternalServerError, err.Error())
	}

	items := make([]AttachmentListItem, 0, len(attachments))
	for i := range attachments {
		items = append(items, attachments[i].ToListItem(ctrl.Service.FileURL(&attachments[i])))
	}

	return c.JSON(fiber.Map{
		"attachments": items,
		"count":       len(items),
		"status":      "success",
	})
}

// GetAttachment godoc
// @Summary Get attachment
// @Tags attachments
// @Produce json
// @Param id path int true "Attachment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /attachments/{id}/ [get]
func (ctrl *AttachmentController) GetAttachment(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return failed(c, fiber.StatusNotFound, "Attachment not found")
	}

	attachment, err := ctrl.Service.Get(c.UserContext(), id, middleware.CurrentUser(c).UserID)
	if errors.Is(err, ErrAttachmentNotFound) {
		return failed(c, fiber.StatusNotFound, "Attachment not found")
	}
	if err != nil {
		ctrl.Logger.Error("Error getting attachment", zap.Int64("attachment_id", id), zap.Error(err))
		return failed(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"attachment": attachment.ToDetail(ctrl.Service.FileURL(attachment)),
		"status":     "success",
	})
}

// UpdateAttachment godoc
// @Summary Update attachment description
// @Tags attachments
// @Accept json
// @Produce json
// @Param id path int true "Attachment ID"
// @Param body body map[string]string true "description"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /attachments/{id}/ [patch]
func (ctrl *AttachmentController) UpdateAttachment(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return failed(c, fiber.StatusNotFound, "Attachment not found")
	}

	var body struct {
		Description string `json:"description" form:"description"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return failed(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	attachment, err := ctrl.Service.UpdateDescription(c.UserContext(), id, middleware.CurrentUser(c).UserID, body.Description)
	switch {
	case errors.Is(err, ErrAttachmentNotFound):
		return failed(c, fiber.StatusNotFound, "Attachment not found")
	case errors.Is(err, ErrDescriptionTooLong):
		return failed(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		ctrl.Logger.Error("Error updating attachment", zap.Int64("attachment_id", id), zap.Error(err))
		return failed(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"message":    "Attachment updated successfully",
		"attachment": attachment.ToDetail(""),
		"status":     "success",
	})
}

// DeleteAttachment godoc
// @Summary Delete attachment
// @Tags attachments
// @Produce json
// @Param id path int true "Attachment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /attachments/{id}/ [delete]
func (ctrl *AttachmentController) DeleteAttachment(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return failed(c, fiber.StatusNotFound, "Attachment not found")
	}

	err := ctrl.Service.Delete(c.UserContext(), id, middleware.CurrentUser(c).UserID)
	if errors.Is(err, ErrAttachmentNotFound) {
		return failed(c, fiber.StatusNotFound, "Attachment not found")
	}
	if err != nil {
		ctrl.Logger.Error("Error deleting attachment", zap.Int64("attachment_id", id), zap.Error(err))
		return failed(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "Attachment deleted successfully",
		"status":  "success",
	})
}

// BulkDeleteAttachments godoc
// @Summary Bulk delete attachments
// @Description Delete every listed attachment owned by the caller; partial failures are reported
// @Tags attachments
// @Accept json
// @Produce json
// @Param body body map[string][]int true "attachment_ids"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /attachments/bulk-delete/ [post]
func (ctrl *AttachmentController) BulkDeleteAttachments(c *fiber.Ctx) error {
	var body struct {
		AttachmentIDs []int64 `json:"attachment_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return failed(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := ctrl.Service.BulkDelete(c.UserContext(), body.AttachmentIDs, middleware.CurrentUser(c).UserID)
	switch {
	case errors.Is(err, ErrNoIDs):
		return failed(c, fiber.StatusBadRequest, "No attachment IDs provided")
	case errors.Is(err, ErrAttachmentNotFound):
		return failed(c, fiber.StatusNotFound, "No attachments found")
	case err != nil:
		ctrl.Logger.Error("Error in bulk delete", zap.Error(err))
		return failed(c, fiber.StatusInternalServerError, err.Error())
	}

	message := fmt.Sprintf("Deleted %d attachments", result.DeletedCount)
	response := fiber.Map{
		"deleted_count": result.DeletedCount,
		"status":        "success",
	}
	if len(result.FailedDeletions) > 0 {
		response["failed_deletions"] = result.FailedDeletions
		message += fmt.Sprintf(", %d failed", len(result.FailedDeletions))
	}
	response["message"] = message

	return c.JSON(response)
}
