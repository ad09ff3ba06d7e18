package seed

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/pkg/models"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// Post seeds the database with demo data, or wipes it when action=clear.
// @Summary Seed or clear the database
// @Tags seed
// @Produce json
// @Param action query string false "Set to 'clear' to empty all tables instead of seeding"
// @Success 200 {object} models.MessageResponse
// @Router /api/seed [post]
func (h *Handler) Post(c *fiber.Ctx) error {
	if c.Query("action") == "clear" {
		if err := Clear(h.db); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to clear data"})
		}
		return c.JSON(models.MessageResponse{Message: "All data cleared successfully"})
	}

	if err := Apply(h.db); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to seed database"})
	}
	return c.JSON(models.MessageResponse{Message: "Database seeded successfully with dummy data"})
}
