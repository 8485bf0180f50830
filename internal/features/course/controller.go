package course

import (
	"errors"
	"net/url"
	"strconv"

	"go-coursecreator/internal/features/aicc"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CourseController struct {
	Service CourseService
	Logger  *zap.Logger
}

func NewCourseController(service CourseService, logger *zap.Logger) *CourseController {
	return &CourseController{
		Service: service,
		Logger:  logger,
	}
}

func (ctrl *CourseController) upstreamFailure(c *fiber.Ctx, err error) error {
	var ue *aicc.UpstreamError
	switch {
	case aicc.IsTimeout(err):
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": "Request to AI course creator timed out"})
	case aicc.IsConnection(err):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to connect to AI course creator: " + err.Error()})
	case errors.As(err, &ue):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		ctrl.Logger.Error("Error calling AI course creator", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// ListCourses godoc
// @Summary List AI courses
// @Description Fetch AI-generated courses and filter, search and sort them
// @Tags ai-courses
// @Produce json
// @Param status query string false "Exact status"
// @Param action query string false "Exact action"
// @Param course_size query string false "Exact size class"
// @Param search query string false "Substring of topic or instructions"
// @Param ordering query string false "Field to sort by, prefix with - for descending"
// @Success 200 {array} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 504 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /ai-courses/ [get]
func (ctrl *CourseController) ListCourses(c *fiber.Ctx) error {
	courses, err := ctrl.Service.ListCourses(c.UserContext(), ListQuery{
		Status:     c.Query("status"),
		Action:     c.Query("action"),
		CourseSize: c.Query("course_size"),
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
	})
	if err != nil {
		return ctrl.upstreamFailure(c, err)
	}
	return c.JSON(courses)
}

// GetCourse godoc
// @Summary Get AI course
// @Tags ai-courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /ai-courses/{id}/ [get]
func (ctrl *CourseController) GetCourse(c *fiber.Ctx) error {
	id := c.Params("id")
	if n, err := strconv.ParseInt(id, 10, 64); err != nil || n < 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	resp, err := ctrl.Service.GetCourse(c.UserContext(), id)
	if err != nil {
		return ctrl.upstreamFailure(c, err)
	}
	if resp.StatusCode == fiber.StatusNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	return c.Status(resp.StatusCode).JSON(resp.Payload())
}

// GetTaskStatus godoc
// @Summary Get course generation task status
// @Tags ai-courses
// @Produce json
// @Param course path string true "Course identifier"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /task-status/{course}/ [get]
func (ctrl *CourseController) GetTaskStatus(c *fiber.Ctx) error {
	// Params are not unescaped by fiber; the client escapes again upstream.
	course, err := url.PathUnescape(c.Params("course"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course identifier"})
	}

	resp, err := ctrl.Service.GetTaskStatus(c.UserContext(), course)
	if err != nil {
		return ctrl.upstreamFailure(c, err)
	}
	if resp.StatusCode == fiber.StatusNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
	}
	return c.Status(resp.StatusCode).JSON(resp.Payload())
}
