package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the error JSON shape: a single "error" message string.
type ErrorBody struct {
	Error string `json:"error"`
}

// OK sends data as-is with 200. Handlers own their success shape
// (e.g. {"success": true, "newOwnership": ...}).
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Error sends {"error": message} with the given status code.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

// Unauthorized sends 401 with the same shape as other errors.
// Use this for auth middleware so all errors are consistent.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}
