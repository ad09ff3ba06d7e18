package files

import (
	"errors"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/internal/storage"
	"github.com/qzlaw/office-backend/pkg/ids"
	"github.com/qzlaw/office-backend/pkg/models"
)

type Handler struct {
	db    *gorm.DB
	store storage.Provider
}

func NewHandler(db *gorm.DB, store storage.Provider) *Handler {
	return &Handler{db: db, store: store}
}

// Upload godoc
// @Summary      Upload a file to a case
// @Description  Writes the artifact first, then the metadata row; the
// @Description  artifact is removed again if the row insert fails.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        case_id  formData  string  true  "case id"
// @Param        file     formData  file    true  "file"
// @Success      201  {object}  map[string]string  "id, filename, original_name, file_path, message"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /upload [post]
func (h *Handler) Upload(c *fiber.Ctx) error {
	caseID := c.FormValue("case_id")
	if caseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "case_id is required"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "No file uploaded"})
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	src, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to upload file"})
	}
	defer src.Close()

	key := storage.MakeFileKey(fh.Filename)
	if err := h.store.Upload(c.Context(), key, src, contentType, fh.Size); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to upload file"})
	}

	rec := models.CaseFile{
		ID:           ids.New("cf"),
		CaseID:       caseID,
		Filename:     key,
		OriginalName: fh.Filename,
		FilePath:     h.store.PublicURL(key),
		FileType:     contentType,
		FileSize:     fh.Size,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		// Compensate: never leave an artifact without its metadata row.
		_ = h.store.Delete(c.Context(), key)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to save file info"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":            rec.ID,
		"filename":      rec.Filename,
		"original_name": rec.OriginalName,
		"file_path":     rec.FilePath,
		"message":       "File uploaded successfully",
	})
}

// List godoc
// @Summary      List files for a case
// @Tags         files
// @Produce      json
// @Param        case_id  query string true "case id"
// @Success      200  {array}   models.CaseFile
// @Failure      400  {object}  models.ErrorResponse
// @Router       /upload [get]
func (h *Handler) List(c *fiber.Ctx) error {
	caseID := c.Query("case_id")
	if caseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "case_id is required"})
	}
	list := []models.CaseFile{}
	if err := h.db.Where("case_id = ?", caseID).Order("uploaded_at DESC").Find(&list).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to load files"})
	}
	return c.JSON(list)
}

// Delete godoc
// @Summary      Delete a file
// @Description  The metadata row is only removed once the artifact is gone
// @Description  (already-absent counts as gone), so a failed removal can be
// @Description  retried.
// @Tags         files
// @Produce      json
// @Param        id  query string true "file id"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /upload [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "ID required"})
	}

	var rec models.CaseFile
	if err := h.db.Take(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{Error: "File not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete file"})
	}

	if err := h.store.Delete(c.Context(), rec.Filename); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete file"})
	}
	if err := h.db.Delete(&models.CaseFile{}, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Failed to delete file"})
	}
	return c.JSON(models.MessageResponse{Message: "File deleted successfully"})
}
