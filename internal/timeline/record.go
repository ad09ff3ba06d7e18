package timeline

import (
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/pkg/ids"
	"github.com/qzlaw/office-backend/pkg/models"
)

// Opening entry written when a case is created. Arabic because the
// timeline is user-facing content, not machine state.
const (
	OpeningTitle       = "فتح الملف"
	OpeningDescription = "تم إنشاء الملف القضائي"
)

// Record inserts a timeline entry for a case. Callers that need the entry
// to be part of a larger atomic change pass their transaction handle.
func Record(tx *gorm.DB, caseID, date, title, description string) (models.TimelineEntry, error) {
	entry := models.TimelineEntry{
		ID:          ids.New("tl"),
		CaseID:      caseID,
		Date:        date,
		Title:       title,
		Description: description,
	}
	return entry, tx.Create(&entry).Error
}
