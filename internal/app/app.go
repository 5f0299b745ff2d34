package app

import (
	"shareabite-backend/internal/admin"
	"shareabite-backend/internal/auth"
	"shareabite-backend/internal/catalog"
	"shareabite-backend/internal/config"
	"shareabite-backend/internal/constants"
	"shareabite-backend/internal/database"
	"shareabite-backend/internal/health"
	"shareabite-backend/internal/listings"
	"shareabite-backend/internal/middleware"
	"shareabite-backend/internal/profile"
	"shareabite-backend/internal/requestevents"
	"shareabite-backend/internal/requests"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis); the client doubles as the health marker store
	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	// Health request marker (after session)
	app.Use(middleware.HealthMarker(rdb))

	// Tracing + route logger
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// --- Routes (no auth) ---
	var dbPinger health.DBPinger
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			dbPinger = sqlDB
		}
	}
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             dbPinger,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/errors", healthHandlers.Errors)
	app.Get("/reset", healthHandlers.Reset)

	// Auth: register/login public, me/logout session-aware
	var authService *auth.Service
	var finder auth.UserFinder
	if db != nil {
		authService = &auth.Service{DB: db}
		finder = authService
	}
	authHandlers := &auth.Handlers{
		Service:    authService,
		UserFinder: finder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	// --- Protected modules (auth required) ---
	if db != nil && rdb != nil {
		// Catalog: any authenticated role may browse
		catalogService := &catalog.Service{DB: db}
		catalogHandlers := &catalog.Handlers{Service: catalogService}
		catalogGroup := app.Group("/api/v1/catalog", middleware.RequireAuth())
		catalogGroup.Get("/browse", middleware.AuthorizePermission(constants.BrowseCatalog), catalogHandlers.Browse)

		// Listings: merchant-owned CRUD
		listingsService := &listings.Service{DB: db}
		listingsHandlers := &listings.Handlers{Service: listingsService}
		listingsGroup := app.Group("/api/v1/listings", middleware.RequireAuth())
		listingsGroup.Post("/create-listing", middleware.AuthorizePermission(constants.ManageListings), listingsHandlers.CreateListing)
		listingsGroup.Put("/edit-listing/:listing_id", middleware.AuthorizePermission(constants.ManageListings), listingsHandlers.EditListing)
		listingsGroup.Post("/archive-listing", middleware.AuthorizePermission(constants.ManageListings), listingsHandlers.ArchiveListing)
		listingsGroup.Post("/unarchive-listing", middleware.AuthorizePermission(constants.ManageListings), listingsHandlers.UnarchiveListing)
		listingsGroup.Delete("/delete-listing/:listing_id", middleware.AuthorizePermission(constants.ManageListings), listingsHandlers.DeleteListing)
		listingsGroup.Get("/get-merchant-listings", middleware.AuthorizePermission(constants.ManageListings), listingsHandlers.GetMerchantListings)
		listingsGroup.Get("/get-listing/:listing_id", listingsHandlers.GetListingByID)

		// Requests: users create and view their own, merchants review
		requestsService := &requests.Service{DB: db, ReserveOnApprove: cfg.ReserveOnApprove}
		requestsHandlers := &requests.Handlers{Service: requestsService}
		requestsGroup := app.Group("/api/v1/requests", middleware.RequireAuth())
		requestsGroup.Post("/create-request", middleware.AuthorizePermission(constants.CreateRequest), requestsHandlers.CreateRequest)
		requestsGroup.Get("/get-user-requests", middleware.AuthorizePermission(constants.ViewOwnRequests), requestsHandlers.GetUserRequests)
		requestsGroup.Get("/get-merchant-requests", middleware.AuthorizePermission(constants.ReviewRequests), requestsHandlers.GetMerchantRequests)
		requestsGroup.Patch("/transition-request", middleware.AuthorizePermission(constants.ReviewRequests), requestsHandlers.TransitionRequest)

		// Request events: the merchant's audit trail
		eventsService := &requestevents.Service{DB: db}
		eventsHandlers := &requestevents.Handlers{Service: eventsService}
		eventsGroup := app.Group("/api/v1/request-events", middleware.RequireAuth())
		eventsGroup.Get("/get-merchant-request-events", middleware.AuthorizePermission(constants.ReviewRequests), eventsHandlers.GetMerchantRequestEvents)

		// Profile
		profileService := &profile.Service{DB: db}
		profileHandlers := &profile.Handlers{Service: profileService}
		profileGroup := app.Group("/api/v1/profile", middleware.RequireAuth())
		profileGroup.Get("/view-profile", profileHandlers.ViewProfile)
		profileGroup.Patch("/update-profile", profileHandlers.UpdateProfile)

		// Admin: read-only aggregates
		adminService := &admin.Service{DB: db}
		adminHandlers := &admin.Handlers{Service: adminService}
		adminGroup := app.Group("/api/v1/admin", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ViewPlatformStats))
		adminGroup.Get("/overview", adminHandlers.Overview)
		adminGroup.Get("/list-listings", adminHandlers.ListListings)
		adminGroup.Get("/list-requests", adminHandlers.ListRequests)
		adminGroup.Get("/list-profiles", adminHandlers.ListProfiles)
	}

	return app, db, rdb, nil
}
