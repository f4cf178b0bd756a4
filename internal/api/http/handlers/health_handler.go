package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/review-router/internal/persistence"
)

const readinessTimeout = 2 * time.Second

// DirChecker reports whether the export directory is usable.
type DirChecker interface {
	CheckDir() error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	webhookURL  string
	exports     DirChecker
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance. exports and redis may be nil.
func NewHealthHandler(serviceName, version, webhookURL string, exports DirChecker, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		webhookURL:  webhookURL,
		exports:     exports,
		redis:       redis,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness. The webhook is never called here: any POST to it
// starts the automation flow.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	deps := fiber.Map{}
	ready := true
	check := func(name string, err error, okStatus string) {
		if err != nil {
			deps[name] = err.Error()
			ready = false
			return
		}
		deps[name] = okStatus
	}

	if h.webhookURL == "" {
		deps["webhook"] = "not configured"
		ready = false
	} else {
		deps["webhook"] = "configured"
	}

	if h.exports != nil {
		check("export", h.exports.CheckDir(), "ok")
	}

	if h.redis.Enabled() {
		check("redis", h.redis.Ping(ctx), "ok")
	} else {
		deps["redis"] = "disabled"
	}

	if ready {
		return c.JSON(fiber.Map{"status": "ready", "dependencies": deps})
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": deps,
		},
	})
}
