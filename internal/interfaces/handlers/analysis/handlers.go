package analysis

import (
	"errors"

	analysissvc "gridshare-backend/internal/application/analysis"
	"gridshare-backend/internal/application/loadcurve"
	"gridshare-backend/internal/application/recommend"
	"gridshare-backend/internal/middleware"
	"gridshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *analysissvc.Service
}

// AnalyzeLoadCurve POST /api/v1/analysis/load-curve
func (h *Handlers) AnalyzeLoadCurve(c *fiber.Ctx) error {
	var body struct {
		FileContent string `json:"fileContent"`
	}
	if err := c.BodyParser(&body); err != nil || body.FileContent == "" {
		return response.Error(c, "fileContent is required", 400)
	}

	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	result, err := h.Service.Analyze(c.Context(), userID, body.FileContent)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrPaymentRequired):
			return response.Error(c, err.Error(), 402)
		case errors.Is(err, recommend.ErrRateLimited):
			return response.Error(c, err.Error(), 429)
		case errors.Is(err, loadcurve.ErrNoSamples),
			errors.Is(err, loadcurve.ErrZeroSpan),
			errors.Is(err, recommend.ErrNoJSONInReply),
			errors.Is(err, recommend.ErrBadMixShape),
			errors.Is(err, recommend.ErrNotConfigured):
			return response.Error(c, err.Error(), 500)
		default:
			return response.Error(c, "Internal Server Error", 500)
		}
	}

	return response.OK(c, fiber.Map{
		"result": fiber.Map{
			"recommended_mix": result.RecommendedMix,
		},
		"analysis": result.Analysis,
	})
}

// History GET /api/v1/analysis/history
func (h *Handlers) History(c *fiber.Ctx) error {
	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	records, err := h.Service.History(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.OK(c, fiber.Map{"analyses": records})
}
