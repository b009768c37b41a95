package response

import "github.com/gofiber/fiber/v2"

// The booking API uses two error envelopes, kept exactly as observed: auth
// endpoints answer with {"message": ...} while room and booking endpoints
// answer with {"error": ...}.

// Message sends a {"message": ...} body with the given status
func Message(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{"message": message})
}

// Error sends an {"error": ...} body with the given status
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{"error": message})
}

// BadRequest sends a 400 with an {"error": ...} body
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// NotFound sends a 404 with an {"error": ...} body
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Unauthorized sends a 401 with a {"message": ...} body
func Unauthorized(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusUnauthorized, message)
}

// InternalServerError sends a 500 with an {"error": ...} body
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
