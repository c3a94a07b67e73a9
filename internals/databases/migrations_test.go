package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academyModel "akademiku_backend/internals/features/academies/model"
	studentModel "akademiku_backend/internals/features/students/model"
)

// The schema must migrate on sqlite as-is: no Postgres-only default
// expressions may leak into the model tags, primary keys come from the
// BeforeCreate hooks instead.
func TestMigrateOnSqlite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	a := academyModel.AcademyModel{AcademyName: "Akademi Uji"}
	require.NoError(t, db.Create(&a).Error)
	assert.NotEqual(t, uuid.Nil, a.AcademyID)

	s := studentModel.StudentModel{StudentAcademyID: a.AcademyID, StudentName: "Andi"}
	require.NoError(t, db.Create(&s).Error)
	assert.NotEqual(t, uuid.Nil, s.StudentID)
}
