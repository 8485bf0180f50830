package course_creator

import (
	"errors"

	"go-coursecreator/internal/features/aicc"
	"go-coursecreator/internal/features/user"
	"go-coursecreator/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CourseCreatorController struct {
	Service     CourseCreatorService
	UserService user.UserService
	Logger      *zap.Logger
}

func NewCourseCreatorController(service CourseCreatorService, userService user.UserService, logger *zap.Logger) *CourseCreatorController {
	return &CourseCreatorController{
		Service:     service,
		UserService: userService,
		Logger:      logger,
	}
}

// CreateCourse godoc
// @Summary Create or update a course with AI
// @Description Forward a course generation request to the AI course-generation service and relay its response
// @Tags course-creator
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Course request (action, topic, ...)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 504 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /course-creator/ [post]
func (ctrl *CourseCreatorController) CreateCourse(c *fiber.Ctx) error {
	claims := middleware.CurrentUser(c)

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	requester, err := ctrl.UserService.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		ctrl.Logger.Error("Error loading user", zap.String("user_id", claims.UserID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := ctrl.Service.CreateCourse(c.UserContext(), requester, middleware.CurrentOrg(c), req)
	if err != nil {
		switch {
		case aicc.IsTimeout(err):
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": "Request to AI course creator timed out"})
		case aicc.IsConnection(err):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to connect to AI course creator: " + err.Error()})
		default:
			ctrl.Logger.Error("Error creating course", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(resp.StatusCode).JSON(resp.Payload())
}
