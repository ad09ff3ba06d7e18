package timeline

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/pkg/models"
	"github.com/qzlaw/office-backend/pkg/validation"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// AddEntryRequest is the POST body. The case is deliberately not checked
// for existence: entries can be recorded ahead of or after the case row
// (see the delete semantics of the case service).
type AddEntryRequest struct {
	CaseID      string `json:"case_id" validate:"required,max=80"`
	Date        string `json:"date" validate:"omitempty,isodate"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// List godoc
// @Summary      List timeline entries for a case
// @Tags         timeline
// @Produce      json
// @Param        case_id  query string true "case id"
// @Success      200  {array}   models.TimelineEntry
// @Failure      400  {object}  models.ErrorResponse
// @Router       /timeline [get]
func (h *Handler) List(c *fiber.Ctx) error {
	caseID := c.Query("case_id")
	if caseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "case_id is required"})
	}

	entries := []models.TimelineEntry{}
	if err := h.db.Where("case_id = ?", caseID).Order("date DESC").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load timeline"})
	}
	return c.JSON(entries)
}

// Add godoc
// @Summary      Add a timeline entry
// @Tags         timeline
// @Accept       json
// @Produce      json
// @Param        payload  body  AddEntryRequest  true  "Entry payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  models.ErrorResponse
// @Router       /timeline [post]
func (h *Handler) Add(c *fiber.Ctx) error {
	var in AddEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	date := in.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	entry, err := Record(h.db, in.CaseID, date, in.Title, in.Description)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to add timeline entry"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      entry.ID,
		"message": "Timeline entry added successfully",
	})
}

// Delete godoc
// @Summary      Delete a timeline entry
// @Tags         timeline
// @Produce      json
// @Param        id  query string true "entry id"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /timeline [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	if err := h.db.Delete(&models.TimelineEntry{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete timeline entry"})
	}
	return c.JSON(models.MessageResponse{Message: "Timeline entry deleted successfully"})
}
