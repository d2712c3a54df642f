package repository

import (
	"context"
	"fmt"

	"github.com/divyansh956/Aarohan/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindProgress(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := r.DB.WithContext(ctx).
		Preload("CompletedUnits").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, translate(err, "FindProgress")
	}
	return &progress, nil
}

func (r *ProgressRepository) FindProgressWithCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := r.DB.WithContext(ctx).
		Preload("CompletedUnits").
		Preload("Course").
		Preload("Course.Sections").
		Preload("Course.Sections.Units").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, translate(err, "FindProgressWithCourse")
	}
	return &progress, nil
}

// AddCompletedUnit inserts into the completed set; the composite primary key
// turns a duplicate into a no-op instead of a second row.
func (r *ProgressRepository) AddCompletedUnit(ctx context.Context, progressID, unitID uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CompletedUnit{ProgressID: progressID, UnitID: unitID})
	if res.Error != nil {
		return false, fmt.Errorf("AddCompletedUnit: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Create starts an empty progress record. It reports false when the user is
// already enrolled in the course.
func (r *ProgressRepository) Create(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseProgress, bool, error) {
	progress := models.CourseProgress{UserID: userID, CourseID: courseID}
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&progress)
	if res.Error != nil {
		return nil, false, fmt.Errorf("Create: %w", res.Error)
	}
	return &progress, res.RowsAffected > 0, nil
}

func (r *ProgressRepository) ListCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB.WithContext(ctx).
		Model(&models.CourseProgress{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("ListCourseIDs: %w", err)
	}
	return ids, nil
}

// ListByCourse returns every enrollment of the course with its completed set.
func (r *ProgressRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.CourseProgress, error) {
	var records []models.CourseProgress
	err := r.DB.WithContext(ctx).
		Preload("CompletedUnits").
		Where("course_id = ?", courseID).
		Order("created_at").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("ListByCourse: %w", err)
	}
	return records, nil
}
