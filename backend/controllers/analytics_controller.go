package controllers

import (
	"errors"

	"github.com/divyansh956/Aarohan/backend/config"
	apperrors "github.com/divyansh956/Aarohan/backend/errors"
	"github.com/divyansh956/Aarohan/backend/middleware"
	"github.com/divyansh956/Aarohan/backend/repository"
	"github.com/divyansh956/Aarohan/backend/services"
	"github.com/divyansh956/Aarohan/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AnalyticsController struct {
	Cfg      *config.Config
	Courses  *repository.CourseRepository
	Progress *repository.ProgressRepository
}

func NewAnalyticsController(cfg *config.Config, courses *repository.CourseRepository, progress *repository.ProgressRepository) *AnalyticsController {
	return &AnalyticsController{Cfg: cfg, Courses: courses, Progress: progress}
}

type StudentProgress struct {
	UserID     uuid.UUID `json:"user_id"`
	Completed  int       `json:"completed"`
	Percentage float64   `json:"percentage"`
}

type UnitStats struct {
	UnitID    uuid.UUID `json:"unit_id"`
	Title     string    `json:"title"`
	Completed int       `json:"completed"`
}

// GetCourseAnalytics возвращает аналитику по курсу
func (ac *AnalyticsController) GetCourseAnalytics(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Course not found")
	}

	course, err := ac.Courses.FindCourse(c.UserContext(), courseID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return utils.NotFound(c, "Course not found")
	}
	if err != nil {
		log.Error().Err(err).Str("course", courseID.String()).Msg("GetCourseAnalytics")
		return utils.InternalServerError(c, "Could not query database")
	}

	if course.AuthorID != middleware.UserID(c) {
		return utils.Forbidden(c, "You don't have permission to view this analytics")
	}

	records, err := ac.Progress.ListByCourse(c.UserContext(), courseID)
	if err != nil {
		log.Error().Err(err).Str("course", courseID.String()).Msg("GetCourseAnalytics")
		return utils.InternalServerError(c, "Could not query database")
	}

	total := course.UnitCount()
	perUnit := make(map[uuid.UUID]int, total)
	students := make([]StudentProgress, 0, len(records))
	finished := 0
	sum := 0.0
	for _, record := range records {
		for _, cu := range record.CompletedUnits {
			perUnit[cu.UnitID]++
		}
		pct := services.CompletionPercentage(len(record.CompletedUnits), total)
		if total > 0 && len(record.CompletedUnits) >= total {
			finished++
		}
		sum += pct
		students = append(students, StudentProgress{
			UserID:     record.UserID,
			Completed:  len(record.CompletedUnits),
			Percentage: pct,
		})
	}

	unitStats := make([]UnitStats, 0, total)
	for _, section := range course.Sections {
		for _, unit := range section.Units {
			unitStats = append(unitStats, UnitStats{UnitID: unit.ID, Title: unit.Title, Completed: perUnit[unit.ID]})
		}
	}

	average := 0.0
	if len(records) > 0 {
		average = services.RoundPercent(sum / float64(len(records)))
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{
		"course_id":    course.ID,
		"course_title": course.Title,
		"total_units":  total,
		"stats": fiber.Map{
			"total_enrollments":  len(records),
			"completed":          finished,
			"average_percentage": average,
		},
		"students":   students,
		"unit_stats": unitStats,
	})
}
