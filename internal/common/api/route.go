package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature API so that fx can collect them
// into the "routes" group and mount them on the Fiber app.
type Route interface {
	Setup(app *fiber.App)
}
