package transactions

import (
	txsvc "gridshare-backend/internal/application/transactions"
	"gridshare-backend/internal/middleware"
	"gridshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *txsvc.Service
}

// GetTransactions GET /api/v1/transactions/get-transactions
func (h *Handlers) GetTransactions(c *fiber.Ctx) error {
	userID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	txs, err := h.Service.ViewTransactions(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.OK(c, fiber.Map{"transactions": txs, "total": len(txs)})
}
