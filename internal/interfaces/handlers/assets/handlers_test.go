package assets

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	assetsvc "gridshare-backend/internal/application/assets"
	"gridshare-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssetsTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Asset{}))

	h := &Handlers{Service: &assetsvc.Service{DB: db}}
	app := fiber.New()
	app.Get("/get-all-assets", h.GetAllAssets)
	app.Get("/get-asset/:asset_id", h.GetAssetByID)
	return app, db
}

func seedAssets(t *testing.T, db *gorm.DB) []domain.Asset {
	assets := []domain.Asset{
		{Name: "Solar One", Category: domain.CategoryPV, CapacityKW: 1000, PricePerPercent: 500},
		{Name: "Wind One", Category: domain.CategoryWind, CapacityKW: 5000, PricePerPercent: 900},
	}
	for i := range assets {
		require.NoError(t, db.Create(&assets[i]).Error)
	}
	return assets
}

func TestGetAllAssets(t *testing.T) {
	app, db := setupAssetsTest(t)
	seedAssets(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/get-all-assets", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	assert.Equal(t, 2.0, out["total"])
}

func TestGetAllAssets_CategoryFilter(t *testing.T) {
	app, db := setupAssetsTest(t)
	seedAssets(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/get-all-assets?category=Wind", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	assert.Equal(t, 1.0, out["total"])
	list := out["assets"].([]interface{})
	first := list[0].(map[string]interface{})
	assert.Equal(t, "Wind One", first["name"])
}

func TestGetAllAssets_UnknownCategory(t *testing.T) {
	app, _ := setupAssetsTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/get-all-assets?category=Coal", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetAssetByID(t *testing.T) {
	app, db := setupAssetsTest(t)
	assets := seedAssets(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/get-asset/"+assets[0].AssetID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	assert.Equal(t, "Solar One", out["name"])
}

func TestGetAssetByID_BadUUID(t *testing.T) {
	app, _ := setupAssetsTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/get-asset/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestGetAssetByID_NotFound(t *testing.T) {
	app, _ := setupAssetsTest(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/get-asset/"+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
