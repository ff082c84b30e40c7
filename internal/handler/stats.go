package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/service"
)

type StatsHandler struct {
	svc *service.AnalyzeService
}

func NewStatsHandler(svc *service.AnalyzeService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	return c.JSON(h.svc.Stats())
}
