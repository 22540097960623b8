package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/config"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/handler"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/middleware"
	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	LessonHandler   *handler.LessonHandler
	AttemptHandler  *handler.AttemptHandler
	ProgressHandler *handler.ProgressHandler
	BadgeHandler    *handler.BadgeHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(api.Group("/lessons"))
	}

	if deps.AttemptHandler != nil {
		deps.AttemptHandler.RegisterAttemptRoutes(api.Group("/attempts"))
	}

	student := api.Group("/students/:studentID")

	if deps.AttemptHandler != nil {
		deps.AttemptHandler.RegisterStudentRoutes(student)
	}

	if deps.ProgressHandler != nil {
		deps.ProgressHandler.Register(student)
	}

	if deps.BadgeHandler != nil {
		var checkLimiter fiber.Handler
		if cfg.CheckRateLimit > 0 {
			checkLimiter = middleware.RateLimit("badge_check", cfg.CheckRateLimit, cfg.CheckRateWindow)
		}
		deps.BadgeHandler.Register(student, checkLimiter)
	}
}
