package clients

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

// ClientRequest covers create and update; both write the same field set.
// The counters are never writable through the API.
type ClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email,max=200"`
	Phone   string `json:"phone" validate:"max=40"`
	Address string `json:"address" validate:"max=300"`
	CIN     string `json:"cin" validate:"max=40"`
}

// Get godoc
// @Summary      Get one client or list all clients
// @Tags         clients
// @Produce      json
// @Param        id  query string false "client id"
// @Success      200  {object}  models.Client
// @Failure      404  {object}  models.ErrorResponse
// @Router       /clients [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		list := []models.Client{}
		if err := h.db.Order("created_at DESC").Find(&list).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load clients"})
		}
		return c.JSON(list)
	}

	var cl models.Client
	if err := h.db.Take(&cl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load client"})
	}
	return c.JSON(cl)
}

// Create godoc
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        payload  body  ClientRequest  true  "Client payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  models.ErrorResponse
// @Router       /clients [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	cl := models.Client{
		ID:      ids.New("cl"),
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		CIN:     strings.TrimSpace(in.CIN),
	}
	if err := h.db.Create(&cl).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create client"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      cl.ID,
		"message": "Client created successfully",
	})
}

// Update godoc
// @Summary      Update a client (full overwrite of the writable fields)
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id       query string         true  "client id"
// @Param        payload  body  ClientRequest  true  "Full field set"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /clients [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	var in ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	updates := map[string]any{
		"name":    strings.TrimSpace(in.Name),
		"email":   strings.TrimSpace(in.Email),
		"phone":   strings.TrimSpace(in.Phone),
		"address": strings.TrimSpace(in.Address),
		"cin":     strings.TrimSpace(in.CIN),
	}
	if err := h.db.Model(&models.Client{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to update client"})
	}
	return c.JSON(models.MessageResponse{Message: "Client updated successfully"})
}

// Delete godoc
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Param        id  query string true "client id"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /clients [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	if err := h.db.Delete(&models.Client{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete client"})
	}
	return c.JSON(models.MessageResponse{Message: "Client deleted successfully"})
}
