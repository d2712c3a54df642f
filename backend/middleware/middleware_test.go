package middleware

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/divyansh956/Aarohan/backend/config"
	"github.com/divyansh956/Aarohan/backend/models"
	"github.com/divyansh956/Aarohan/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = &config.Config{JWTSecret: "testsecret", JWTTTL: time.Hour}

func newApp(buf *bytes.Buffer) *fiber.App {
	app := fiber.New()
	app.Use(LoggingMiddleware(zerolog.New(buf)))
	app.Get("/me", AuthMiddleware(testCfg), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c).String())
	})
	app.Get("/teach", AuthMiddleware(testCfg), InstructorMiddleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func token(t *testing.T, id uuid.UUID, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken(id, role, testCfg)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthMiddlewareInjectsUser(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.New()

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", token(t, id, models.RoleStudent))

	resp, err := newApp(&buf).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(resp.Body)
	assert.Equal(t, id.String(), body.String())
	assert.Contains(t, buf.String(), `"path":"/me"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	var buf bytes.Buffer

	resp, err := newApp(&buf).Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestInstructorMiddleware(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(&buf)

	for role, want := range map[string]int{
		models.RoleStudent:    fiber.StatusForbidden,
		models.RoleInstructor: fiber.StatusNoContent,
	} {
		req := httptest.NewRequest("GET", "/teach", nil)
		req.Header.Set("Authorization", token(t, uuid.New(), role))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

func TestLoggingMiddlewareRendersChainErrors(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Use(LoggingMiddleware(zerolog.New(&buf)))
	app.Get("/gone", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Course not found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/gone", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"error":"Course not found"`)
}
