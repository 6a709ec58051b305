package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"hellojoke/internal/config"
	"hellojoke/internal/domain"
	"hellojoke/internal/http/handlers"
	"hellojoke/internal/http/middleware"
	"hellojoke/internal/infra/logging"
)

const readinessKey = "hellojoke:ready"

// Deps holds everything the app needs. Store is optional and defaults to an
// in-memory limiter store.
type Deps struct {
	Config   config.Config
	Provider domain.JokeProvider
	Store    fiber.Storage
}

// New creates and configures the Fiber app.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               deps.Config.Server.Prefork,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	middleware.Register(app, deps.Config, deps.Store, storeReady(deps.Store))
	RegisterRoutes(app, deps)

	// Ensure all responses, including 404s, return JSON
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app
}

// RegisterRoutes mounts all route handlers to the app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Get("/hello", handlers.HandleHelloRequest(deps.Provider, deps.Config.Greeting.DefaultName))
	app.Get("/ops/monitor", monitor.New())
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	}

	logging.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": msg,
		},
	})
}

// storeReady reports readiness as the limiter store answering a read.
func storeReady(store fiber.Storage) func() bool {
	if store == nil {
		return nil
	}
	return func() bool {
		_, err := store.Get(readinessKey)
		return err == nil
	}
}
