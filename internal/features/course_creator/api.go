package course_creator

import (
	"go-coursecreator/internal/common/api"
	"go-coursecreator/internal/config"
	"go-coursecreator/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CourseCreatorApi struct {
	controller *CourseCreatorController
	config     *config.Config
}

func NewCourseCreatorApi(controller *CourseCreatorController, config *config.Config) api.Route {
	return &CourseCreatorApi{
		controller: controller,
		config:     config,
	}
}

func (h *CourseCreatorApi) Setup(app *fiber.App) {
	app.Post("/course-creator",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.OrgMiddleware(h.config.DefaultOrg),
		h.controller.CreateCourse,
	)
}
