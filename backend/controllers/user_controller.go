package controllers

import (
	"errors"

	"github.com/divyansh956/Aarohan/backend/config"
	"github.com/divyansh956/Aarohan/backend/middleware"
	"github.com/divyansh956/Aarohan/backend/models"
	"github.com/divyansh956/Aarohan/backend/repository"
	"github.com/divyansh956/Aarohan/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Progress *repository.ProgressRepository
}

func NewUserController(db *gorm.DB, cfg *config.Config, progress *repository.ProgressRepository) *UserController {
	return &UserController{DB: db, Cfg: cfg, Progress: progress}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the caller's profile and enrolled course ids
// @Tags users
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var user models.User
	if err := uc.DB.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		log.Error().Err(err).Msg("GetProfile: find user")
		return utils.InternalServerError(c, "Could not query database")
	}

	courseIDs, err := uc.Progress.ListCourseIDs(c.UserContext(), userID)
	if err != nil {
		log.Error().Err(err).Msg("GetProfile: list enrollments")
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, "", fiber.Map{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"role":             user.Role,
		"created_at":       user.CreatedAt,
		"enrolled_courses": courseIDs,
	})
}
