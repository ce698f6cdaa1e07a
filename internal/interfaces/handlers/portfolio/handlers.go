package portfolio

import (
	portfoliosvc "gridshare-backend/internal/application/portfolio"
	"gridshare-backend/internal/middleware"
	"gridshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *portfoliosvc.Service
}

// ViewPortfolio GET /api/v1/portfolio/view-portfolio
func (h *Handlers) ViewPortfolio(c *fiber.Ctx) error {
	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	positions, err := h.Service.ViewPortfolio(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.OK(c, fiber.Map{"positions": positions, "total": len(positions)})
}
