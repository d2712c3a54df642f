package repository

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/divyansh956/Aarohan/backend/errors"
	"github.com/divyansh956/Aarohan/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, error) {
	var unit models.Unit
	if err := r.DB.WithContext(ctx).First(&unit, "id = ?", unitID).Error; err != nil {
		return nil, translate(err, "FindUnit")
	}
	return &unit, nil
}

func (r *CourseRepository) FindSection(ctx context.Context, sectionID uuid.UUID) (*models.Section, error) {
	var section models.Section
	if err := r.DB.WithContext(ctx).First(&section, "id = ?", sectionID).Error; err != nil {
		return nil, translate(err, "FindSection")
	}
	return &section, nil
}

// FindCourse loads the course with its sections and units in sequence order.
func (r *CourseRepository) FindCourse(ctx context.Context, courseID uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.DB.WithContext(ctx).
		Preload("Sections", orderBySequence).
		Preload("Sections.Units", orderBySequence).
		First(&course, "id = ?", courseID).Error
	if err != nil {
		return nil, translate(err, "FindCourse")
	}
	return &course, nil
}

func orderBySequence(db *gorm.DB) *gorm.DB {
	return db.Order("sequence_order")
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
