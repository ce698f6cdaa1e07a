package health

import (
	healthsvc "gridshare-backend/internal/application/health"
	"gridshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Rdb            *redis.Client
	DB             healthsvc.DBPinger
	HealthAdminKey string
}

// JSON GET /health/json — full health payload.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	return response.OK(c, healthsvc.CollectHealth(c.Context(), h.Rdb, h.DB))
}

// Dashboard GET / — same payload; kept as the root route for uptime probes.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	return h.JSON(c)
}

// Reset GET /reset?key=... — clear traffic counters (admin only).
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.HealthAdminKey == "" || c.Query("key") != h.HealthAdminKey {
		return response.Error(c, "Forbidden", 403)
	}
	if h.Rdb == nil {
		return response.Error(c, "Redis not configured", 500)
	}
	if err := healthsvc.Reset(c.Context(), h.Rdb); err != nil {
		return response.Error(c, "Internal Server Error", 500)
	}
	return response.OK(c, fiber.Map{"message": "Health counters reset"})
}
