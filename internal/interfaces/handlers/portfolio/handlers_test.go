package portfolio

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	portfoliosvc "gridshare-backend/internal/application/portfolio"
	"gridshare-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPortfolioTest(t *testing.T, userID uuid.UUID) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Asset{}, &domain.Ownership{}))

	h := &Handlers{Service: &portfoliosvc.Service{DB: db}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{"user_id": userID.String()})
		return c.Next()
	})
	app.Get("/view-portfolio", h.ViewPortfolio)
	return app, db
}

func TestViewPortfolio_Empty(t *testing.T) {
	app, _ := setupPortfolioTest(t, uuid.New())

	resp, err := app.Test(httptest.NewRequest("GET", "/view-portfolio", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	assert.Equal(t, 0.0, out["total"])
}

func TestViewPortfolio_PositionsWithValue(t *testing.T) {
	userID := uuid.New()
	app, db := setupPortfolioTest(t, userID)

	asset := domain.Asset{Name: "Speicher Bayern Süd", Category: domain.CategoryBattery, PricePerPercent: 980}
	require.NoError(t, db.Create(&asset).Error)
	require.NoError(t, db.Create(&domain.Ownership{
		UserID: userID, AssetID: asset.AssetID, Percentage: 12.5,
	}).Error)
	// A different user's holding must not leak in.
	require.NoError(t, db.Create(&domain.Ownership{
		UserID: uuid.New(), AssetID: asset.AssetID, Percentage: 40,
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/view-portfolio", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	require.Equal(t, 1.0, out["total"])

	positions := out["positions"].([]interface{})
	pos := positions[0].(map[string]interface{})
	assert.Equal(t, "Speicher Bayern Süd", pos["asset_name"])
	assert.Equal(t, 12.5, pos["percentage"])
	assert.Equal(t, 12250.0, pos["current_value"])
}
