package middleware

import (
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

// ExposeErrors marks every request so error responses carry dev_message and
// trace. Mount it only outside production.
func ExposeErrors(enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(util.ExposeErrorsKey, enabled)
		return c.Next()
	}
}
