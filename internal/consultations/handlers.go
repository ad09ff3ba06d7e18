package consultations

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/pkg/ids"
	"github.com/qzlaw/office-backend/pkg/models"
	"github.com/qzlaw/office-backend/pkg/validation"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type CreateConsultationRequest struct {
	ClientName  string `json:"client_name" validate:"required,max=200"`
	Phone       string `json:"phone" validate:"max=40"`
	Email       string `json:"email" validate:"omitempty,email,max=200"`
	Type        string `json:"type" validate:"max=100"`
	Description string `json:"description" validate:"max=4000"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
}

// UpdateConsultationRequest adds the reply, which only exists once someone
// has answered.
type UpdateConsultationRequest struct {
	ClientName  string `json:"client_name" validate:"max=200"`
	Phone       string `json:"phone" validate:"max=40"`
	Email       string `json:"email" validate:"omitempty,email,max=200"`
	Type        string `json:"type" validate:"max=100"`
	Description string `json:"description" validate:"max=4000"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Reply       string `json:"reply" validate:"max=4000"`
}

// Get godoc
// @Summary      Get one consultation or list all
// @Tags         consultations
// @Produce      json
// @Param        id  query string false "consultation id"
// @Success      200  {object}  models.Consultation
// @Failure      404  {object}  models.ErrorResponse
// @Router       /consultations [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		list := []models.Consultation{}
		if err := h.db.Order("created_at DESC").Find(&list).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load consultations"})
		}
		return c.JSON(list)
	}

	var cons models.Consultation
	if err := h.db.Take(&cons, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Consultation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load consultation"})
	}
	return c.JSON(cons)
}

// Create godoc
// @Summary      Create a consultation
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateConsultationRequest  true  "Consultation payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  models.ErrorResponse
// @Router       /consultations [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateConsultationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	status := models.ConsultationStatus(in.Status)
	if status == "" {
		status = models.ConsultationPending
	}

	cons := models.Consultation{
		ID:          ids.New("cons"),
		ClientName:  strings.TrimSpace(in.ClientName),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Type:        strings.TrimSpace(in.Type),
		Description: in.Description,
		Status:      status,
	}
	if err := h.db.Create(&cons).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create consultation"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      cons.ID,
		"message": "Consultation created successfully",
	})
}

// Update godoc
// @Summary      Update a consultation (full overwrite, including reply)
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Param        id       query string                     true  "consultation id"
// @Param        payload  body  UpdateConsultationRequest  true  "Full field set"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /consultations [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	var in UpdateConsultationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	status := models.ConsultationStatus(in.Status)
	if status == "" {
		status = models.ConsultationPending
	}

	updates := map[string]any{
		"client_name": strings.TrimSpace(in.ClientName),
		"phone":       strings.TrimSpace(in.Phone),
		"email":       strings.TrimSpace(in.Email),
		"type":        strings.TrimSpace(in.Type),
		"description": in.Description,
		"status":      status,
		"reply":       in.Reply,
	}
	if err := h.db.Model(&models.Consultation{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to update consultation"})
	}
	return c.JSON(models.MessageResponse{Message: "Consultation updated successfully"})
}

// Delete godoc
// @Summary      Delete a consultation
// @Tags         consultations
// @Produce      json
// @Param        id  query string true "consultation id"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /consultations [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	if err := h.db.Delete(&models.Consultation{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete consultation"})
	}
	return c.JSON(models.MessageResponse{Message: "Consultation deleted successfully"})
}
