package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	apperrors "github.com/divyansh956/Aarohan/backend/errors"
	"github.com/divyansh956/Aarohan/backend/models"

	"github.com/google/uuid"
)

type CourseStore interface {
	FindUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, error)
	FindSection(ctx context.Context, sectionID uuid.UUID) (*models.Section, error)
}

type ProgressStore interface {
	// FindProgress loads the record with its completed set.
	FindProgress(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseProgress, error)
	// FindProgressWithCourse also loads the course sections and their units.
	FindProgressWithCourse(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseProgress, error)
	// AddCompletedUnit reports false when the unit was already in the set.
	AddCompletedUnit(ctx context.Context, progressID, unitID uuid.UUID) (bool, error)
}

// ProgressRecorder marks units as completed on an existing progress record.
type ProgressRecorder struct {
	courses  CourseStore
	progress ProgressStore
}

func NewProgressRecorder(courses CourseStore, progress ProgressStore) *ProgressRecorder {
	return &ProgressRecorder{courses: courses, progress: progress}
}

// Complete adds unitID to the user's completed set for courseID.
// The progress record must already exist; it is created on enrollment.
func (r *ProgressRecorder) Complete(ctx context.Context, userID, courseID, unitID uuid.UUID) error {
	unit, err := r.courses.FindUnit(ctx, unitID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrUnitNotFound
	}
	if err != nil {
		return fmt.Errorf("courses.FindUnit: %w", err)
	}

	section, err := r.courses.FindSection(ctx, unit.SectionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrUnitNotFound
	}
	if err != nil {
		return fmt.Errorf("courses.FindSection: %w", err)
	}
	// a unit from another course would push the ratio past 100%
	if section.CourseID != courseID {
		return apperrors.ErrUnitNotFound
	}

	progress, err := r.progress.FindProgress(ctx, userID, courseID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrProgressNotFound
	}
	if err != nil {
		return fmt.Errorf("progress.FindProgress: %w", err)
	}

	if progress.HasCompleted(unitID) {
		return apperrors.ErrAlreadyCompleted
	}

	added, err := r.progress.AddCompletedUnit(ctx, progress.ID, unitID)
	if err != nil {
		return fmt.Errorf("progress.AddCompletedUnit: %w", err)
	}
	if !added {
		return apperrors.ErrAlreadyCompleted
	}

	return nil
}

// ProgressCalculator reports how much of a course a user has completed.
type ProgressCalculator struct {
	progress ProgressStore
}

func NewProgressCalculator(progress ProgressStore) *ProgressCalculator {
	return &ProgressCalculator{progress: progress}
}

func (c *ProgressCalculator) Percentage(ctx context.Context, userID, courseID uuid.UUID) (float64, error) {
	if courseID == uuid.Nil {
		return 0, apperrors.ErrCourseIDRequired
	}

	progress, err := c.progress.FindProgressWithCourse(ctx, userID, courseID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return 0, apperrors.ErrProgressNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("progress.FindProgressWithCourse: %w", err)
	}

	total := 0
	if progress.Course != nil {
		total = progress.Course.UnitCount()
	}

	return CompletionPercentage(len(progress.CompletedUnits), total), nil
}

// CompletionPercentage returns completed/total as a percentage rounded half-up
// to two decimals. A course without units is 0% complete.
func CompletionPercentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return RoundPercent(float64(completed) / float64(total) * 100)
}

// RoundPercent rounds half-up to two decimals.
func RoundPercent(p float64) float64 {
	return math.Floor(p*100+0.5) / 100
}
