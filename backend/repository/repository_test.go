package repository

import (
	"context"
	"testing"

	apperrors "github.com/divyansh956/Aarohan/backend/errors"
	"github.com/divyansh956/Aarohan/backend/models"
	"github.com/divyansh956/Aarohan/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, utils.Migrate(db))
	return db
}

// seedCourse creates a course with one section per entry in unitsPerSection.
func seedCourse(t *testing.T, db *gorm.DB, unitsPerSection ...int) (*models.Course, []models.Unit) {
	t.Helper()

	course := models.Course{Title: "Go basics", AuthorID: uuid.New()}
	require.NoError(t, db.Create(&course).Error)

	var units []models.Unit
	for i, n := range unitsPerSection {
		section := models.Section{CourseID: course.ID, Title: "section", SequenceOrder: i + 1}
		require.NoError(t, db.Create(&section).Error)
		for j := 0; j < n; j++ {
			unit := models.Unit{SectionID: section.ID, Title: "unit", SequenceOrder: j + 1}
			require.NoError(t, db.Create(&unit).Error)
			units = append(units, unit)
		}
	}
	return &course, units
}

func TestCourseRepositoryLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()
	course, units := seedCourse(t, db, 2, 1)

	unit, err := repo.FindUnit(ctx, units[0].ID)
	require.NoError(t, err)
	assert.Equal(t, units[0].ID, unit.ID)

	section, err := repo.FindSection(ctx, unit.SectionID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, section.CourseID)

	loaded, err := repo.FindCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Sections, 2)
	assert.Equal(t, 1, loaded.Sections[0].SequenceOrder)
	assert.Len(t, loaded.Sections[0].Units, 2)
	assert.Equal(t, 3, loaded.UnitCount())

	_, err = repo.FindUnit(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindSection(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.FindCourse(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProgressRepositoryCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	course, _ := seedCourse(t, db, 1)
	userID := uuid.New()

	progress, created, err := repo.Create(ctx, userID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, uuid.Nil, progress.ID)

	_, created, err = repo.Create(ctx, userID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)

	ids, err := repo.ListCourseIDs(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{course.ID}, ids)
}

func TestProgressRepositoryCompletedSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	course, units := seedCourse(t, db, 2, 3)
	userID := uuid.New()

	_, err := repo.FindProgress(ctx, userID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	progress, _, err := repo.Create(ctx, userID, course.ID)
	require.NoError(t, err)

	added, err := repo.AddCompletedUnit(ctx, progress.ID, units[0].ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddCompletedUnit(ctx, progress.ID, units[0].ID)
	require.NoError(t, err)
	assert.False(t, added)

	loaded, err := repo.FindProgress(ctx, userID, course.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.CompletedUnits, 1)
	assert.True(t, loaded.HasCompleted(units[0].ID))
	assert.False(t, loaded.HasCompleted(units[1].ID))

	withCourse, err := repo.FindProgressWithCourse(ctx, userID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, withCourse.Course)
	assert.Equal(t, 5, withCourse.Course.UnitCount())
	assert.Len(t, withCourse.CompletedUnits, 1)
}

func TestProgressRepositoryListByCourse(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	course, units := seedCourse(t, db, 2)
	other, _ := seedCourse(t, db, 1)

	first, _, err := repo.Create(ctx, uuid.New(), course.ID)
	require.NoError(t, err)
	_, _, err = repo.Create(ctx, uuid.New(), course.ID)
	require.NoError(t, err)
	_, _, err = repo.Create(ctx, uuid.New(), other.ID)
	require.NoError(t, err)

	_, err = repo.AddCompletedUnit(ctx, first.ID, units[0].ID)
	require.NoError(t, err)

	records, err := repo.ListByCourse(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	completed := 0
	for _, r := range records {
		assert.Equal(t, course.ID, r.CourseID)
		completed += len(r.CompletedUnits)
	}
	assert.Equal(t, 1, completed)

	records, err = repo.ListByCourse(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, records)
}
