package router

import (
	"net/http"

	analysissvc "gridshare-backend/internal/application/analysis"
	assetsvc "gridshare-backend/internal/application/assets"
	authsvc "gridshare-backend/internal/application/auth"
	portfoliosvc "gridshare-backend/internal/application/portfolio"
	"gridshare-backend/internal/application/recommend"
	tradesvc "gridshare-backend/internal/application/trading"
	txsvc "gridshare-backend/internal/application/transactions"
	"gridshare-backend/internal/config"
	"gridshare-backend/internal/infrastructure/database"
	analysishandler "gridshare-backend/internal/interfaces/handlers/analysis"
	assethandler "gridshare-backend/internal/interfaces/handlers/assets"
	authhandler "gridshare-backend/internal/interfaces/handlers/auth"
	healthhandler "gridshare-backend/internal/interfaces/handlers/health"
	portfoliohandler "gridshare-backend/internal/interfaces/handlers/portfolio"
	tradehandler "gridshare-backend/internal/interfaces/handlers/trading"
	txhandler "gridshare-backend/internal/interfaces/handlers/transactions"
	"gridshare-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS())

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:       cfg.SessionSecret,
		RedisURL:     cfg.RedisURL,
		IsProduction: cfg.Env == "production",
	}

	var finder authsvc.UserFinder
	if db != nil {
		finder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{DB: db, Finder: finder, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", ah.Register)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil && rdb != nil {
		// Assets (read-only catalogue)
		as := &assetsvc.Service{DB: db}
		asH := &assethandler.Handlers{Service: as}
		ag := app.Group("/api/v1/assets", middleware.RequireAuth())
		ag.Get("/get-all-assets", asH.GetAllAssets)
		ag.Get("/get-asset/:asset_id", asH.GetAssetByID)

		// Trading (settlement against the ownership ledger)
		ts := &tradesvc.Service{Store: &tradesvc.GormStore{DB: db}}
		th := &tradehandler.Handlers{Service: ts}
		tg := app.Group("/api/v1/trading", middleware.RequireAuth())
		tg.Post("/execute-trade", th.ExecuteTrade)

		// Portfolio
		ps := &portfoliosvc.Service{DB: db}
		ph := &portfoliohandler.Handlers{Service: ps}
		pg := app.Group("/api/v1/portfolio", middleware.RequireAuth())
		pg.Get("/view-portfolio", ph.ViewPortfolio)

		// Transactions
		txs := &txsvc.Service{DB: db}
		txh := &txhandler.Handlers{Service: txs}
		txg := app.Group("/api/v1/transactions", middleware.RequireAuth())
		txg.Get("/get-transactions", txh.GetTransactions)

		// Load-curve analysis (AI gateway)
		rec := &recommend.Service{Gateway: &recommend.HTTPGateway{
			URL:    cfg.AIGatewayURL,
			APIKey: cfg.AIGatewayAPIKey,
			Model:  cfg.AIModel,
		}}
		ans := &analysissvc.Service{DB: db, Recommender: rec}
		anh := &analysishandler.Handlers{Service: ans}
		ang := app.Group("/api/v1/analysis", middleware.RequireAuth())
		ang.Post("/load-curve", anh.AnalyzeLoadCurve)
		ang.Get("/history", anh.History)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
