package middleware

import (
	"context"
	"strings"

	common_models "go-coursecreator/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// OrgMiddleware resolves the organization tag for the request: the X-Org
// header wins, then the org claim of the authenticated user, then defaultOrg.
// Must run after AuthMiddleware.
func OrgMiddleware(defaultOrg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org := c.Get("X-Org")
		if org == "" {
			if claims := CurrentUser(c); claims != nil {
				org = claims.Org
			}
		}
		if org == "" {
			org = defaultOrg
		}
		// The org becomes a storage path segment.
		if !validOrg(org) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid organization"})
		}

		c.Locals(common_models.OrgKey, org)
		c.SetUserContext(context.WithValue(c.UserContext(), common_models.OrgKey, org))
		return c.Next()
	}
}

// CurrentOrg returns the org resolved by OrgMiddleware
func CurrentOrg(c *fiber.Ctx) string {
	org, _ := c.Locals(common_models.OrgKey).(string)
	return org
}

func validOrg(org string) bool {
	return org != "." && !strings.Contains(org, "..") && !strings.ContainsAny(org, "/\\\x00")
}
