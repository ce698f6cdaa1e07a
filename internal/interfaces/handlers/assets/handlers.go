package assets

import (
	assetsvc "gridshare-backend/internal/application/assets"
	"gridshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *assetsvc.Service
}

// GetAllAssets GET /api/v1/assets/get-all-assets?category=PV
func (h *Handlers) GetAllAssets(c *fiber.Ctx) error {
	list, err := h.Service.GetAllAssets(c.Context(), c.Query("category"))
	if err != nil {
		if err == assetsvc.ErrUnknownCategory {
			return response.Error(c, err.Error(), 400)
		}
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.OK(c, fiber.Map{"assets": list, "total": len(list)})
}

// GetAssetByID GET /api/v1/assets/get-asset/:asset_id
func (h *Handlers) GetAssetByID(c *fiber.Ctx) error {
	assetID, err := uuid.Parse(c.Params("asset_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for asset_id", 400)
	}
	asset, err := h.Service.GetAssetByID(c.Context(), assetID)
	if err != nil {
		if err.Error() == "Asset not found" {
			return response.Error(c, err.Error(), 404)
		}
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.OK(c, asset)
}
