package routes

import (
	"strings"

	"github.com/divyansh956/Aarohan/backend/config"
	"github.com/divyansh956/Aarohan/backend/controllers"
	"github.com/divyansh956/Aarohan/backend/middleware"
	"github.com/divyansh956/Aarohan/backend/repository"
	"github.com/divyansh956/Aarohan/backend/services"
	"github.com/divyansh956/Aarohan/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewApp builds the fiber app with the shared middleware stack.
func NewApp(cfg *config.Config, logger zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "course-progress",
		ErrorHandler: utils.ErrorHandler,
	})

	// logging wraps recover so panicked requests still get an access-log line
	app.Use(middleware.LoggingMiddleware(logger))
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.TrimSpace(cfg.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	courseRepo := repository.NewCourseRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	recorder := services.NewProgressRecorder(courseRepo, progressRepo)
	calculator := services.NewProgressCalculator(progressRepo)

	healthController := controllers.NewHealthController(db)
	app.Get("/api/health", healthController.Health)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	instructorMiddleware := middleware.InstructorMiddleware()

	// User routes
	userController := controllers.NewUserController(db, cfg, progressRepo)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)

	// Progress routes
	progressController := controllers.NewProgressController(recorder, calculator, cfg)
	app.Post("/api/course/updateCourseProgress", authMiddleware, progressController.UpdateCourseProgress)
	app.Post("/api/course/getProgressPercentage", authMiddleware, progressController.GetProgressPercentage)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg, courseRepo, progressRepo)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Post("/", instructorMiddleware, coursesController.CreateCourse)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/enroll", coursesController.Enroll)
	courses.Post("/:id/sections", instructorMiddleware, coursesController.AddSection)

	analyticsController := controllers.NewAnalyticsController(cfg, courseRepo, progressRepo)
	courses.Get("/:id/analytics", instructorMiddleware, analyticsController.GetCourseAnalytics)

	sections := app.Group("/api/sections", authMiddleware, instructorMiddleware)
	sections.Post("/:id/units", coursesController.AddUnit)
}
