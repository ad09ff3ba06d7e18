package notifications

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

type CreateNotificationRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"max=2000"`
	Type    string `json:"type" validate:"omitempty,oneof=appointment case message general"`
}

type UpdateNotificationRequest struct {
	IsRead bool `json:"is_read"`
}

// Get godoc
// @Summary      Get one notification or list all (newest first)
// @Tags         notifications
// @Produce      json
// @Param        id  query string false "notification id"
// @Success      200  {object}  models.Notification
// @Failure      404  {object}  models.ErrorResponse
// @Router       /notifications [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		list := []models.Notification{}
		if err := h.db.Order("created_at DESC").Find(&list).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load notifications"})
		}
		return c.JSON(list)
	}

	var n models.Notification
	if err := h.db.Take(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Notification not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load notification"})
	}
	return c.JSON(n)
}

// Create godoc
// @Summary      Create a notification (unread)
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateNotificationRequest  true  "Notification payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  models.ErrorResponse
// @Router       /notifications [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	typ := models.NotificationType(in.Type)
	if typ == "" {
		typ = models.NotificationGeneral
	}

	n := models.Notification{
		ID:      ids.New("notif"),
		Title:   strings.TrimSpace(in.Title),
		Message: in.Message,
		Type:    typ,
		IsRead:  false,
	}
	if err := h.db.Create(&n).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create notification"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      n.ID,
		"message": "Notification created successfully",
	})
}

// Update handles both forms of PUT: ?action=mark_all_read flips every
// unread notification, otherwise ?id sets is_read from the body.
//
// Update godoc
// @Summary      Mark one notification (or all) as read
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        id      query string false "notification id"
// @Param        action  query string false "mark_all_read"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /notifications [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	if c.Query("action") == "mark_all_read" {
		if err := h.db.Model(&models.Notification{}).
			Where("is_read = ?", false).
			Update("is_read", true).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to update notifications"})
		}
		return c.JSON(models.MessageResponse{Message: "All notifications marked as read"})
	}

	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	var in UpdateNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if err := h.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("is_read", in.IsRead).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to update notification"})
	}
	return c.JSON(models.MessageResponse{Message: "Notification updated successfully"})
}

// Delete godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Param        id  query string true "notification id"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /notifications [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	if err := h.db.Delete(&models.Notification{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete notification"})
	}
	return c.JSON(models.MessageResponse{Message: "Notification deleted successfully"})
}
