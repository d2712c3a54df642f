package middleware

import (
	"github.com/divyansh956/Aarohan/backend/config"
	"github.com/divyansh956/Aarohan/backend/models"
	"github.com/divyansh956/Aarohan/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	userIDKey = "userID"
	roleKey   = "role"
)

// AuthMiddleware verifies the bearer token and stores the caller identity in Locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		c.Locals(userIDKey, claims.UserID)
		c.Locals(roleKey, claims.Role)
		return c.Next()
	}
}

// InstructorMiddleware must run after AuthMiddleware.
func InstructorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(roleKey).(string); role != models.RoleInstructor {
			return utils.Forbidden(c, "Forbidden - Instructor access required")
		}
		return c.Next()
	}
}

// UserID returns the identity stored by AuthMiddleware.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(userIDKey).(uuid.UUID)
	return id
}
