package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// CORS allows all cross-origin requests. Preflight requests receive an
// empty 200 response; credentials are not used cross-origin (the session
// cookie is same-site), so the wildcard origin is safe here.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}
