package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/xid"

	"hellojoke/internal/config"
	"hellojoke/internal/infra/logging"
)

const (
	LivenessEndpoint  = "/ops/health"
	ReadinessEndpoint = "/ops/ready"
)

// Register attaches the global middleware chain. store backs the per-client
// limiter; ready answers the readiness probe and may be nil.
func Register(app *fiber.App, cfg config.Config, store fiber.Storage, ready func() bool) {
	app.Use(cors.New())

	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))

	app.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  LivenessEndpoint,
		ReadinessEndpoint: ReadinessEndpoint,
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return ready == nil || ready()
		},
	}))

	app.Use(RequestLog())

	if cfg.RateLimiter.EnableUserLimiter || cfg.RateLimiter.UserLimit > 0 {
		app.Use(UserRateLimit(cfg.RateLimiter, store))
	}
}

// RequestLog logs one line per request.
func RequestLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = c.GetRespHeader(fiber.HeaderXRequestID)
		}
		logging.Info("Incoming request", "method", c.Method(), "path", c.Path(), "request_id", requestID)
		return c.Next()
	}
}
