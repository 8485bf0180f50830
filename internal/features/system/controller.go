package system

import (
	"go-coursecreator/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SystemController struct{}

func NewSystemController() *SystemController {
	return &SystemController{}
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (ctrl *SystemController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Hello godoc
// @Summary      Check the API is reachable with credentials
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /hello/ [get]
func (ctrl *SystemController) Hello(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "API is working"})
}

// CurrentUser godoc
// @Summary      Get current user info
// @Description  Get the caller's identity from the JWT
// @Tags         debug
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/debug/me [get]
func (ctrl *SystemController) CurrentUser(c *fiber.Ctx) error {
	claims := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"email":    claims.Email,
		"org":      middleware.CurrentOrg(c),
		"message":  "This is your current JWT token data",
	})
}
