package appointments

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

type CreateAppointmentRequest struct {
	ClientID   string `json:"client_id" validate:"max=80"`
	ClientName string `json:"client_name" validate:"required,max=200"`
	Service    string `json:"service" validate:"max=200"`
	Date       string `json:"date" validate:"required,isodate"`
	Time       string `json:"time" validate:"omitempty,hhmm"`
	Status     string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes      string `json:"notes" validate:"max=2000"`
	Phone      string `json:"phone" validate:"max=40"`
	Email      string `json:"email" validate:"omitempty,email,max=200"`
}

// UpdateAppointmentRequest overwrites every field except client_id, which
// is fixed at creation.
type UpdateAppointmentRequest struct {
	ClientName string `json:"client_name" validate:"max=200"`
	Service    string `json:"service" validate:"max=200"`
	Date       string `json:"date" validate:"omitempty,isodate"`
	Time       string `json:"time" validate:"omitempty,hhmm"`
	Status     string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes      string `json:"notes" validate:"max=2000"`
	Phone      string `json:"phone" validate:"max=40"`
	Email      string `json:"email" validate:"omitempty,email,max=200"`
}

// Get godoc
// @Summary      Get one appointment or list all (soonest date first)
// @Tags         appointments
// @Produce      json
// @Param        id  query string false "appointment id"
// @Success      200  {object}  models.Appointment
// @Failure      404  {object}  models.ErrorResponse
// @Router       /appointments [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		list := []models.Appointment{}
		if err := h.db.Order("date DESC, time DESC").Find(&list).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load appointments"})
		}
		return c.JSON(list)
	}

	var apt models.Appointment
	if err := h.db.Take(&apt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Appointment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load appointment"})
	}
	return c.JSON(apt)
}

// Create godoc
// @Summary      Create an appointment
// @Description  When the appointment references a client, that client's
// @Description  appointments_count is bumped in the same transaction.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateAppointmentRequest  true  "Appointment payload"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  models.ErrorResponse
// @Router       /appointments [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	status := models.AppointmentStatus(in.Status)
	if status == "" {
		status = models.AppointmentPending
	}

	apt := models.Appointment{
		ID:         ids.New("apt"),
		ClientID:   strings.TrimSpace(in.ClientID),
		ClientName: strings.TrimSpace(in.ClientName),
		Service:    strings.TrimSpace(in.Service),
		Date:       in.Date,
		Time:       in.Time,
		Status:     status,
		Notes:      in.Notes,
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&apt).Error; err != nil {
			return err
		}
		if apt.ClientID != "" {
			if err := tx.Model(&models.Client{}).
				Where("id = ?", apt.ClientID).
				UpdateColumn("appointments_count", gorm.Expr("appointments_count + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create appointment"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      apt.ID,
		"message": "Appointment created successfully",
	})
}

// Update godoc
// @Summary      Update an appointment (full overwrite)
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id       query string                    true  "appointment id"
// @Param        payload  body  UpdateAppointmentRequest  true  "Full field set"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /appointments [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	var in UpdateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	status := models.AppointmentStatus(in.Status)
	if status == "" {
		status = models.AppointmentPending
	}

	updates := map[string]any{
		"client_name": strings.TrimSpace(in.ClientName),
		"service":     strings.TrimSpace(in.Service),
		"date":        in.Date,
		"time":        in.Time,
		"status":      status,
		"notes":       in.Notes,
		"phone":       strings.TrimSpace(in.Phone),
		"email":       strings.TrimSpace(in.Email),
	}
	if err := h.db.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to update appointment"})
	}
	return c.JSON(models.MessageResponse{Message: "Appointment updated successfully"})
}

// Delete godoc
// @Summary      Delete an appointment
// @Tags         appointments
// @Produce      json
// @Param        id  query string true "appointment id"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /appointments [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	// appointments_count is not decremented; it only ever counts upward.
	if err := h.db.Delete(&models.Appointment{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete appointment"})
	}
	return c.JSON(models.MessageResponse{Message: "Appointment deleted successfully"})
}
