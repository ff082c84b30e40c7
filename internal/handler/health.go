package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	rdb         *redis.Client
	upstreamURL string
	httpClient  *http.Client
	startAt     time.Time
}

func NewHealthHandler(rdb *redis.Client, upstreamURL string) *HealthHandler {
	return &HealthHandler{
		rdb:         rdb,
		upstreamURL: upstreamURL,
		httpClient:  &http.Client{Timeout: 3 * time.Second},
		startAt:     time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe with dependency checks.
// Redis is optional, so a missing cache degrades the report without
// failing the probe.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	checks["redis"] = checkRedis(ctx, h.rdb)
	checks["youtube"] = h.checkUpstream(ctx)
	for _, check := range checks {
		if m, ok := check.(fiber.Map); ok && m["status"] == "down" {
			overallStatus = "degraded"
		}
	}

	uptimeSeconds := int(time.Since(h.startAt).Seconds())

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         checks,
		"uptime_seconds": uptimeSeconds,
		"version":        "1.0.0",
	}

	return c.JSON(resp)
}

// checkUpstream probes the YouTube base URL. Any HTTP response counts as
// reachable; only transport failures mark the upstream down.
func (h *HealthHandler) checkUpstream(ctx context.Context) fiber.Map {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.upstreamURL, nil)
	if err != nil {
		return fiber.Map{"status": "down", "error": "bad upstream URL"}
	}

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "unreachable",
		}
	}
	resp.Body.Close()
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
