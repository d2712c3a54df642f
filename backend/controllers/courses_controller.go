package controllers

import (
	"errors"

	"github.com/divyansh956/Aarohan/backend/config"
	apperrors "github.com/divyansh956/Aarohan/backend/errors"
	"github.com/divyansh956/Aarohan/backend/middleware"
	"github.com/divyansh956/Aarohan/backend/models"
	"github.com/divyansh956/Aarohan/backend/repository"
	"github.com/divyansh956/Aarohan/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Courses  *repository.CourseRepository
	Progress *repository.ProgressRepository
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, courses *repository.CourseRepository, progress *repository.ProgressRepository) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Courses: courses, Progress: progress}
}

type CreateCourseInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
}

type CreateSectionInput struct {
	Title string `json:"title" validate:"required,max=200"`
}

type CreateUnitInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,url"`
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input CreateCourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, "Validation Error", errs)
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		AuthorID:    middleware.UserID(c),
	}
	if err := cc.DB.WithContext(c.UserContext()).Create(&course).Error; err != nil {
		log.Error().Err(err).Msg("CreateCourse")
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Created(c, "Course created", course)
}

func (cc *CoursesController) AddSection(c *fiber.Ctx) error {
	var input CreateSectionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, "Validation Error", errs)
	}

	course, err := cc.findOwnedCourse(c, c.Params("id"))
	if err != nil {
		return err
	}

	var sectionCount int64
	if err := cc.DB.WithContext(c.UserContext()).Model(&models.Section{}).Where("course_id = ?", course.ID).Count(&sectionCount).Error; err != nil {
		log.Error().Err(err).Str("course", course.ID.String()).Msg("AddSection: count sections")
		return utils.InternalServerError(c, "Could not query database")
	}

	section := models.Section{
		CourseID:      course.ID,
		Title:         input.Title,
		SequenceOrder: int(sectionCount) + 1,
	}
	if err := cc.DB.WithContext(c.UserContext()).Create(&section).Error; err != nil {
		log.Error().Err(err).Str("course", course.ID.String()).Msg("AddSection")
		return utils.InternalServerError(c, "Could not create section")
	}

	return utils.Created(c, "Section created", section)
}

func (cc *CoursesController) AddUnit(c *fiber.Ctx) error {
	var input CreateUnitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, "Validation Error", errs)
	}

	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Section not found")
	}
	section, err := cc.Courses.FindSection(c.UserContext(), sectionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return utils.NotFound(c, "Section not found")
	}
	if err != nil {
		log.Error().Err(err).Str("section", sectionID.String()).Msg("AddUnit")
		return utils.InternalServerError(c, "Could not query database")
	}

	if _, err := cc.findOwnedCourse(c, section.CourseID.String()); err != nil {
		return err
	}

	var unitCount int64
	if err := cc.DB.WithContext(c.UserContext()).Model(&models.Unit{}).Where("section_id = ?", section.ID).Count(&unitCount).Error; err != nil {
		log.Error().Err(err).Str("section", section.ID.String()).Msg("AddUnit: count units")
		return utils.InternalServerError(c, "Could not query database")
	}

	unit := models.Unit{
		SectionID:     section.ID,
		Title:         input.Title,
		Description:   input.Description,
		VideoURL:      input.VideoURL,
		SequenceOrder: int(unitCount) + 1,
	}
	if err := cc.DB.WithContext(c.UserContext()).Create(&unit).Error; err != nil {
		log.Error().Err(err).Str("section", section.ID.String()).Msg("AddUnit")
		return utils.InternalServerError(c, "Could not create subsection")
	}

	return utils.Created(c, "Subsection created", unit)
}

func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Course not found")
	}

	course, err := cc.Courses.FindCourse(c.UserContext(), courseID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return utils.NotFound(c, "Course not found")
	}
	if err != nil {
		log.Error().Err(err).Str("course", courseID.String()).Msg("GetCourseDetails")
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{
		"course":      course,
		"total_units": course.UnitCount(),
	})
}

// Enroll creates the caller's empty progress record for the course.
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Course not found")
	}

	if _, err := cc.Courses.FindCourse(c.UserContext(), courseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		log.Error().Err(err).Str("course", courseID.String()).Msg("Enroll")
		return utils.InternalServerError(c, "Could not query database")
	}

	progress, created, err := cc.Progress.Create(c.UserContext(), middleware.UserID(c), courseID)
	if err != nil {
		log.Error().Err(err).Str("course", courseID.String()).Msg("Enroll")
		return utils.InternalServerError(c, "Could not enroll")
	}
	if !created {
		return utils.BadRequest(c, "Already enrolled")
	}

	return utils.Created(c, "Enrolled", progress)
}

// findOwnedCourse returns a *fiber.Error rendered by utils.ErrorHandler.
func (cc *CoursesController) findOwnedCourse(c *fiber.Ctx, rawID string) (*models.Course, error) {
	courseID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
	}

	var course models.Course
	if err := cc.DB.WithContext(c.UserContext()).First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		log.Error().Err(err).Str("course", courseID.String()).Msg("findOwnedCourse")
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not query database")
	}

	if course.AuthorID != middleware.UserID(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "You don't have permission to edit this course")
	}
	return &course, nil
}
