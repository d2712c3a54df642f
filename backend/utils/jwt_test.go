package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/divyansh956/Aarohan/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		claims, err := ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return Unauthorized(c, err.Error())
		}
		return c.JSON(fiber.Map{"user_id": claims.UserID.String(), "role": claims.Role})
	})
	return app
}

func TestGenerateAndExtractToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret", JWTTTL: time.Hour}
	userID := uuid.New()

	token, err := GenerateJWTToken(userID, "instructor", cfg)
	require.NoError(t, err)

	for _, header := range []string{token, "Bearer " + token} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)

		resp, err := claimsApp(cfg).Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestExtractTokenRejectsBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret", JWTTTL: time.Hour}
	other := &config.Config{JWTSecret: "othersecret", JWTTTL: time.Hour}
	expired := &config.Config{JWTSecret: "testsecret", JWTTTL: -time.Hour}

	foreign, err := GenerateJWTToken(uuid.New(), "student", other)
	require.NoError(t, err)
	stale, err := GenerateJWTToken(uuid.New(), "student", expired)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      stale,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			resp, err := claimsApp(cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
