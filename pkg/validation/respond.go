package validation

import "github.com/gofiber/fiber/v2"

// Respond writes the 400 body for a failed validation. The API keeps the
// single-message `{error}` shape for every failure class.
func Respond(c *fiber.Ctx, errs *Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": errs.First(),
	})
}
