package trading

import (
	"errors"

	tradesvc "gridshare-backend/internal/application/trading"
	"gridshare-backend/internal/middleware"
	"gridshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *tradesvc.Service
}

// executeTradeRequest is the wire contract. pricePerPercent is accepted
// for client compatibility but never used: the price is re-read from the
// asset row so callers cannot record arbitrary trade prices.
type executeTradeRequest struct {
	AssetID         string  `json:"assetId"`
	UserID          string  `json:"userId"`
	Percentage      float64 `json:"percentage"`
	Mode            string  `json:"mode"`
	PricePerPercent float64 `json:"pricePerPercent"`
}

// ExecuteTrade POST /api/v1/trading/execute-trade
func (h *Handlers) ExecuteTrade(c *fiber.Ctx) error {
	var body executeTradeRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "assetId, userId, percentage and mode are required", 400)
	}
	if body.AssetID == "" || body.Percentage == 0 || body.Mode == "" {
		return response.Error(c, "assetId, userId, percentage and mode are required", 400)
	}

	assetID, err := uuid.Parse(body.AssetID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for assetId", 400)
	}

	// The acting user comes from the session; the body value must match
	// when both are present so nobody trades on another account.
	sessionUserID := middleware.GetUserID(c)
	userIDStr := body.UserID
	if userIDStr == "" {
		userIDStr = sessionUserID
	}
	if userIDStr == "" {
		return response.Error(c, "assetId, userId, percentage and mode are required", 400)
	}
	if sessionUserID != "" && userIDStr != sessionUserID {
		return response.Error(c, "cannot trade on behalf of another user", 403)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return response.Error(c, "Invalid UUID format for userId", 400)
	}

	newOwnership, err := h.Service.ExecuteTrade(c.Context(), tradesvc.TradeInput{
		AssetID:    assetID,
		UserID:     userID,
		Percentage: body.Percentage,
		Mode:       body.Mode,
	})
	if err != nil {
		switch {
		case errors.Is(err, tradesvc.ErrInvalidPercentage),
			errors.Is(err, tradesvc.ErrInvalidMode),
			errors.Is(err, tradesvc.ErrExceedsFullOwnership),
			errors.Is(err, tradesvc.ErrInsufficientOwnership):
			return response.Error(c, err.Error(), 400)
		case errors.Is(err, tradesvc.ErrAssetNotFound):
			return response.Error(c, err.Error(), 404)
		case errors.Is(err, tradesvc.ErrTradeConflict):
			return response.Error(c, err.Error(), 409)
		default:
			return response.Error(c, "Internal Server Error", 500)
		}
	}

	return response.OK(c, fiber.Map{
		"success":      true,
		"newOwnership": newOwnership,
	})
}
