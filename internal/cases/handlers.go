package cases

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/internal/storage"
	"github.com/qzlaw/office-backend/internal/timeline"
	"github.com/qzlaw/office-backend/pkg/ids"
	"github.com/qzlaw/office-backend/pkg/models"
	"github.com/qzlaw/office-backend/pkg/validation"
)

// ===== DTOs =====

type CreateCaseRequest struct {
	ClientID    string `json:"client_id" validate:"max=80"`
	Title       string `json:"title" validate:"max=200"`
	Type        string `json:"type" validate:"required,max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=new in_review in_court closed"`
	Tribunal    string `json:"tribunal" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
	NextSession string `json:"next_session" validate:"omitempty,isodate"`
}

type UpdateCaseRequest struct {
	ClientID    string `json:"client_id" validate:"max=80"`
	Title       string `json:"title" validate:"max=200"`
	Type        string `json:"type" validate:"max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=new in_review in_court closed"`
	Tribunal    string `json:"tribunal" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
	NextSession string `json:"next_session" validate:"omitempty,isodate"`
}

// caseRow is a case joined with the owning client's name (list and detail
// views both carry client_name).
type caseRow struct {
	models.Case
	ClientName string `json:"client_name"`
}

// caseDetail enriches a caseRow with its owned sub-collections.
type caseDetail struct {
	caseRow
	Timeline []models.TimelineEntry `json:"timeline"`
	Files    []models.CaseFile      `json:"files"`
}

type Handler struct {
	db           *gorm.DB
	store        storage.Provider
	numberPrefix string
}

func NewHandler(db *gorm.DB, store storage.Provider, numberPrefix string) *Handler {
	return &Handler{db: db, store: store, numberPrefix: numberPrefix}
}

// Get dispatches on the id query parameter: detail with it, list without.
//
// Get godoc
// @Summary      Get one case (with timeline and files) or list all cases
// @Tags         cases
// @Produce      json
// @Param        id  query string false "case id"
// @Success      200  {object}  caseDetail
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return h.list(c)
	}

	var row caseRow
	err := h.db.Table("cases").
		Select("cases.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = cases.client_id").
		Where("cases.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Case not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load case"})
	}

	detail := caseDetail{
		caseRow:  row,
		Timeline: []models.TimelineEntry{},
		Files:    []models.CaseFile{},
	}
	if err := h.db.Where("case_id = ?", id).Order("date DESC").Find(&detail.Timeline).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load case"})
	}
	if err := h.db.Where("case_id = ?", id).Order("uploaded_at DESC").Find(&detail.Files).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load case"})
	}
	return c.JSON(detail)
}

func (h *Handler) list(c *fiber.Ctx) error {
	rows := []caseRow{}
	err := h.db.Table("cases").
		Select("cases.*, clients.name AS client_name").
		Joins("LEFT JOIN clients ON clients.id = cases.client_id").
		Order("cases.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load cases"})
	}
	return c.JSON(rows)
}

// Create godoc
// @Summary      Create a case
// @Description  Inserts the case, bumps the client's cases_count and writes
// @Description  the opening timeline entry in one transaction.
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateCaseRequest  true  "Case payload"
// @Success      201  {object}  map[string]string  "id, case_number, message"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /cases [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	status := models.CaseStatus(in.Status)
	if status == "" {
		status = models.CaseStatusNew
	}
	var nextSession *string
	if s := strings.TrimSpace(in.NextSession); s != "" {
		nextSession = &s
	}

	cs := models.Case{
		ID:          ids.New("case"),
		ClientID:    strings.TrimSpace(in.ClientID),
		Title:       strings.TrimSpace(in.Title),
		Type:        strings.TrimSpace(in.Type),
		Status:      status,
		Tribunal:    strings.TrimSpace(in.Tribunal),
		Description: strings.TrimSpace(in.Description),
		NextSession: nextSession,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		number, err := GenerateCaseNumber(tx, h.numberPrefix)
		if err != nil {
			return err
		}
		cs.CaseNumber = number

		if err := tx.Create(&cs).Error; err != nil {
			return err
		}
		if cs.ClientID != "" {
			// Atomic increment; the counter never round-trips through Go.
			if err := tx.Model(&models.Client{}).
				Where("id = ?", cs.ClientID).
				UpdateColumn("cases_count", gorm.Expr("cases_count + 1")).Error; err != nil {
				return err
			}
		}
		_, err = timeline.Record(tx, cs.ID, time.Now().Format("2006-01-02"),
			timeline.OpeningTitle, timeline.OpeningDescription)
		return err
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to create case"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          cs.ID,
		"case_number": cs.CaseNumber,
		"message":     "Case created successfully",
	})
}

// Update godoc
// @Summary      Update a case (full overwrite)
// @Description  Every updatable column is written from the request; fields
// @Description  absent from the body end up empty. Timeline, files and
// @Description  counters are untouched.
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        id       query string             true  "case id"
// @Param        payload  body  UpdateCaseRequest  true  "Full field set"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /cases [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}
	var in UpdateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid JSON body"})
	}
	if errs, err := validation.Validate(in); err != nil {
		return fiber.ErrInternalServerError
	} else if errs != nil {
		return validation.Respond(c, errs)
	}

	status := models.CaseStatus(in.Status)
	if status == "" {
		status = models.CaseStatusNew
	}
	var nextSession *string
	if s := strings.TrimSpace(in.NextSession); s != "" {
		nextSession = &s
	}

	updates := map[string]any{
		"title":        strings.TrimSpace(in.Title),
		"type":         strings.TrimSpace(in.Type),
		"status":       status,
		"tribunal":     strings.TrimSpace(in.Tribunal),
		"description":  strings.TrimSpace(in.Description),
		"next_session": nextSession,
		"client_id":    strings.TrimSpace(in.ClientID),
	}
	if err := h.db.Model(&models.Case{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to update case"})
	}
	return c.JSON(models.MessageResponse{Message: "Case updated successfully"})
}

// Delete godoc
// @Summary      Delete a case and everything it owns
// @Description  Removes file artifacts first, then deletes timeline rows,
// @Description  file rows and the case and decrements the client's
// @Description  cases_count inside one transaction.
// @Tags         cases
// @Produce      json
// @Param        id  query string true "case id"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}

	var cs models.Case
	if err := h.db.Take(&cs, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "Case not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete case"})
	}

	// Artifacts go first: once the rows are gone there is no path back to
	// the stored files. Absent artifacts are fine, real failures abort.
	var files []models.CaseFile
	if err := h.db.Where("case_id = ?", id).Find(&files).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete case"})
	}
	for _, f := range files {
		if err := h.store.Delete(c.Context(), f.Filename); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete case files"})
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("case_id = ?", id).Delete(&models.TimelineEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("case_id = ?", id).Delete(&models.CaseFile{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Case{}, "id = ?", id).Error; err != nil {
			return err
		}
		if cs.ClientID != "" {
			if err := tx.Model(&models.Client{}).
				Where("id = ? AND cases_count > 0", cs.ClientID).
				UpdateColumn("cases_count", gorm.Expr("cases_count - 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete case"})
	}
	return c.JSON(models.MessageResponse{Message: "Case deleted successfully"})
}
