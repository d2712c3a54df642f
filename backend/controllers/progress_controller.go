package controllers

import (
	"errors"

	"github.com/divyansh956/Aarohan/backend/config"
	apperrors "github.com/divyansh956/Aarohan/backend/errors"
	"github.com/divyansh956/Aarohan/backend/middleware"
	"github.com/divyansh956/Aarohan/backend/services"
	"github.com/divyansh956/Aarohan/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ProgressController struct {
	Recorder   *services.ProgressRecorder
	Calculator *services.ProgressCalculator
	Cfg        *config.Config
}

func NewProgressController(recorder *services.ProgressRecorder, calculator *services.ProgressCalculator, cfg *config.Config) *ProgressController {
	return &ProgressController{Recorder: recorder, Calculator: calculator, Cfg: cfg}
}

type UpdateProgressInput struct {
	CourseID     string `json:"courseId"`
	SubsectionID string `json:"subsectionId"`
}

type ProgressPercentageInput struct {
	CourseID string `json:"courseId" validate:"required"`
}

// UpdateCourseProgress godoc
// @Summary Mark a subsection as completed
// @Description Adds the subsection to the caller's completed set for the course.
// @Description A subsection that belongs to a different course is answered like an unknown one
// @Description (404 "Invalid subsection"), before the progress record is looked up.
// @Tags progress
// @Accept json
// @Produce json
// @Param input body UpdateProgressInput true "Course and subsection ids"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /course/updateCourseProgress [post]
func (pc *ProgressController) UpdateCourseProgress(c *fiber.Ctx) error {
	var input UpdateProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	// malformed ids cannot name an existing unit or course
	unitID, err := uuid.Parse(input.SubsectionID)
	if err != nil {
		return utils.NotFound(c, "Invalid subsection")
	}
	courseID, _ := uuid.Parse(input.CourseID)

	err = pc.Recorder.Complete(c.UserContext(), middleware.UserID(c), courseID, unitID)
	switch {
	case err == nil:
		return utils.Success(c, fiber.StatusOK, "Course progress updated", nil)
	case errors.Is(err, apperrors.ErrUnitNotFound):
		return utils.NotFound(c, "Invalid subsection")
	case errors.Is(err, apperrors.ErrProgressNotFound):
		return utils.Fail(c, fiber.StatusNotFound, "Course progress does not exist")
	case errors.Is(err, apperrors.ErrAlreadyCompleted):
		return utils.BadRequest(c, "Subsection already completed")
	}

	log.Error().Err(err).
		Str("user", middleware.UserID(c).String()).
		Str("course", input.CourseID).
		Str("subsection", input.SubsectionID).
		Msg("UpdateCourseProgress")
	return utils.InternalServerError(c, "Internal server error")
}

// GetProgressPercentage godoc
// @Summary Get course completion percentage
// @Description Returns completed/total units as a percentage rounded to two decimals
// @Tags progress
// @Accept json
// @Produce json
// @Param input body ProgressPercentageInput true "Course id"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /course/getProgressPercentage [post]
func (pc *ProgressController) GetProgressPercentage(c *fiber.Ctx) error {
	var input ProgressPercentageInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, "Course ID not provided.", errs)
	}

	courseID, err := uuid.Parse(input.CourseID)
	if err != nil {
		return utils.BadRequest(c, "Cannot find Course Progress with these IDs.")
	}

	pct, err := pc.Calculator.Percentage(c.UserContext(), middleware.UserID(c), courseID)
	switch {
	case err == nil:
		return utils.Success(c, fiber.StatusOK, "Successfully fetched Course progress", pct)
	case errors.Is(err, apperrors.ErrCourseIDRequired):
		return utils.BadRequest(c, "Course ID not provided.")
	case errors.Is(err, apperrors.ErrProgressNotFound):
		return utils.BadRequest(c, "Cannot find Course Progress with these IDs.")
	}

	log.Error().Err(err).
		Str("user", middleware.UserID(c).String()).
		Str("course", input.CourseID).
		Msg("GetProgressPercentage")
	return utils.InternalServerError(c, "Internal server error")
}
