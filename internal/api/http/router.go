package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spec-kit/review-router/internal/api/http/handlers"
	"github.com/spec-kit/review-router/internal/config"
	apperrors "github.com/spec-kit/review-router/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Tickets   *handlers.TicketsHandler
	Export    *handlers.ExportHandler
	Form      *handlers.FormHandler
	Metrics   http.Handler
	RateLimit config.RateLimitConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	submitLimit := submissionLimiter(cfg.RateLimit)

	app.Get("/", cfg.Form.Index)
	app.Post("/tickets", submitLimit, cfg.Form.Submit)
	app.Get("/export/latest.csv", cfg.Export.Download)

	api := app.Group("/api/v1")
	api.Get("/sources", cfg.Tickets.ListSources)
	api.Post("/tickets", submitLimit, cfg.Tickets.SubmitTicket)
	api.Get("/tickets/latest", cfg.Export.Latest)
	api.Get("/tickets/export", cfg.Export.Download)
}

// submissionLimiter caps submissions per client IP. Max <= 0 disables it.
func submissionLimiter(cfg config.RateLimitConfig) fiber.Handler {
	if cfg.Max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window(),
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.NewTooManyRequests("too many submissions, retry in " + cfg.Window().Round(time.Second).String())
		},
	})
}
