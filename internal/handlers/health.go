package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Dependency is a named backing service checked by the health endpoint.
type Dependency struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	deps  []Dependency
	stats func() *redis.PoolStats
}

// NewHealthHandler reports on deps. stats may be nil when no cache pool is configured.
func NewHealthHandler(stats func() *redis.PoolStats, deps ...Dependency) *HealthHandler {
	return &HealthHandler{deps: deps, stats: stats}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := fiber.StatusOK
	services := fiber.Map{}
	for _, dep := range h.deps {
		if err := dep.Check(ctx); err != nil {
			services[dep.Name] = err.Error()
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		services[dep.Name] = "connected"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	})
}

func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	if h.stats == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cache not configured"})
	}
	poolStats := h.stats()

	return c.JSON(fiber.Map{
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}
