package services

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

type ServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Icon        string  `json:"icon" validate:"max=60"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// Get godoc
// @Summary      Get one service or list the catalog (oldest first)
// @Tags         services
// @Produce      json
// @Param        id  query string false "service id"
// @Success      200  {object}  models.Service
// @Failure      404  {object}  models.ErrorResponse
// @Router       /services [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		list := []models.Service{}
		if err := h.db.Order("created_at ASC").Find(&list).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load services"})
		}
		return c.JSON(list)
	}

	var svc models.Service
	if err := h.db.Take(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Service not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load service"})
	}
	return c.JSON(svc)
}

// Create godoc
// @Summary      Add a service to the catalog
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        payload  body  ServiceRequest  true  "Service payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  models.ErrorResponse
// @Router       /services [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	svc := models.Service{
		ID:          ids.New("svc"),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Icon:        strings.TrimSpace(in.Icon),
		Price:       in.Price,
	}
	if err := h.db.Create(&svc).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create service"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      svc.ID,
		"message": "Service created successfully",
	})
}

// Update godoc
// @Summary      Update a service (full overwrite)
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id       query string          true  "service id"
// @Param        payload  body  ServiceRequest  true  "Full field set"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /services [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	var in ServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	updates := map[string]any{
		"name":        strings.TrimSpace(in.Name),
		"description": in.Description,
		"icon":        strings.TrimSpace(in.Icon),
		"price":       in.Price,
	}
	if err := h.db.Model(&models.Service{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to update service"})
	}
	return c.JSON(models.MessageResponse{Message: "Service updated successfully"})
}

// Delete godoc
// @Summary      Delete a service
// @Tags         services
// @Produce      json
// @Param        id  query string true "service id"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /services [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	if err := h.db.Delete(&models.Service{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete service"})
	}
	return c.JSON(models.MessageResponse{Message: "Service deleted successfully"})
}
