package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/middleware"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/model"
	"github.com/mathieu-neron/GrowthPilot/growthpilot-go/internal/service"
)

type AnalyzeHandler struct {
	svc *service.AnalyzeService
}

func NewAnalyzeHandler(svc *service.AnalyzeService) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc}
}

type analyzeRequest struct {
	Query string `json:"query"`
}

// Analyze handles POST /api/analyze. This is the only point where pipeline
// error kinds become boundary-facing messages: invalid input → 400 with
// the exact copy the web client shows, everything else → 500. Upstream
// detail is never surfaced raw.
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var req analyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		Metrics.AnalysesTotal.WithLabelValues("invalid").Inc()
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Provide a YouTube channel URL, handle, or ID")
	}

	query, errMsg := middleware.ValidateQuery(req.Query)
	if errMsg != "" {
		Metrics.AnalysesTotal.WithLabelValues("invalid").Inc()
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	report, err := h.svc.Analyze(c.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidQuery):
			Metrics.AnalysesTotal.WithLabelValues("invalid").Inc()
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Provide a YouTube channel URL, handle, or ID")
		case errors.Is(err, model.ErrNotFound):
			Metrics.AnalysesTotal.WithLabelValues("not_found").Inc()
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "No channel matched that URL, handle, or ID")
		case errors.Is(err, model.ErrUpstreamUnavailable):
			Metrics.AnalysesTotal.WithLabelValues("upstream_error").Inc()
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "YouTube is not responding right now. Try again in a few minutes.")
		default:
			Metrics.AnalysesTotal.WithLabelValues("error").Inc()
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Unable to analyze channel")
		}
	}

	Metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	return c.JSON(report)
}
