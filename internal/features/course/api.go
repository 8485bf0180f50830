package course

import (
	"go-coursecreator/internal/common/api"
	"go-coursecreator/internal/config"
	"go-coursecreator/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CourseApi struct {
	controller *CourseController
	config     *config.Config
}

func NewCourseApi(controller *CourseController, config *config.Config) api.Route {
	return &CourseApi{
		controller: controller,
		config:     config,
	}
}

func (h *CourseApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	courses := app.Group("/ai-courses", auth)
	courses.Get("/", h.controller.ListCourses)
	courses.Get("/:id", h.controller.GetCourse)

	app.Get("/task-status/:course", auth, h.controller.GetTaskStatus)
}
