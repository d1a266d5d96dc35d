package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pinger is a dependency the readiness check pings.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness checks.
type HealthHandler struct {
	serviceName  string
	version      string
	dependencies map[string]Pinger
	logger       *zap.Logger
}

// NewHealthHandler returns a new handler instance. Only configured
// dependencies should be passed.
func NewHealthHandler(serviceName, version string, dependencies map[string]Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, dependencies: dependencies, logger: logger}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready pings every dependency concurrently. Failures are logged; the
// response only names the dependency as unavailable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	var (
		mu        sync.Mutex
		depStatus = fiber.Map{}
		ready     = true
		g         errgroup.Group
	)
	for name, dep := range h.dependencies {
		g.Go(func() error {
			status := "ok"
			if err := dep.Ping(ctx); err != nil {
				h.logger.Warn("readiness check failed", zap.String("dependency", name), zap.Error(err))
				status = "unavailable"
			}
			mu.Lock()
			defer mu.Unlock()
			depStatus[name] = status
			if status != "ok" {
				ready = false
			}
			return nil
		})
	}
	_ = g.Wait()

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
