package cases

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/pkg/models"
)

// Case numbers are human-facing: {prefix}-{year}-{4-digit suffix},
// e.g. "QZ-2026-0042". The suffix is random, so uniqueness comes from the
// retry loop plus the unique index on cases.case_number.
const (
	numberSuffixMax   = 9999
	numberMaxAttempts = 8
)

var reCaseNumber = regexp.MustCompile(`^.+-\d{4}-\d{4}$`)

// BuildCaseNumber formats a case number from its parts.
func BuildCaseNumber(prefix string, year, suffix int) string {
	return fmt.Sprintf("%s-%04d-%04d", prefix, year, suffix)
}

// IsCaseNumber reports whether s looks like a generated case number.
func IsCaseNumber(s string) bool {
	return reCaseNumber.MatchString(s)
}

// GenerateCaseNumber allocates a case number that is not yet taken.
// Run inside the creating transaction so the check and the insert see the
// same snapshot; the unique index catches the remaining race.
func GenerateCaseNumber(tx *gorm.DB, prefix string) (string, error) {
	year := time.Now().Year()
	for attempt := 0; attempt < numberMaxAttempts; attempt++ {
		number := BuildCaseNumber(prefix, year, rand.Intn(numberSuffixMax)+1)

		var count int64
		if err := tx.Model(&models.Case{}).Where("case_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", fmt.Errorf("no free case number after %d attempts", numberMaxAttempts)
}
