package cases

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/pkg/models"
)

func TestBuildCaseNumber(t *testing.T) {
	assert.Equal(t, "QZ-2026-0042", BuildCaseNumber("QZ", 2026, 42))
	assert.Equal(t, "QZ-2026-9999", BuildCaseNumber("QZ", 2026, 9999))
}

func TestIsCaseNumber(t *testing.T) {
	assert.True(t, IsCaseNumber("QZ-2026-0042"))
	assert.True(t, IsCaseNumber("AB-1999-0001"))
	assert.False(t, IsCaseNumber("QZ-26-42"))
	assert.False(t, IsCaseNumber("ج/2024/1234"))
	assert.False(t, IsCaseNumber(""))
}

func TestGenerateCaseNumber(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	n, err := GenerateCaseNumber(db, "QZ")
	require.NoError(t, err)
	assert.True(t, IsCaseNumber(n))
	assert.Contains(t, n, fmt.Sprintf("-%d-", time.Now().Year()))
}

func TestGenerateCaseNumber_SkipsTaken(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	// Generated numbers must dodge what is already in the table.
	first, err := GenerateCaseNumber(db, "QZ")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Case{
		ID: "case-1", CaseNumber: first, Type: "t", Status: models.CaseStatusNew,
	}).Error)

	for i := 0; i < 20; i++ {
		n, err := GenerateCaseNumber(db, "QZ")
		require.NoError(t, err)
		assert.NotEqual(t, first, n)
	}
}
