package api

import (
	"database/sql"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/lfsh/market-api/docs"
	"github.com/lfsh/market-api/internal/api/handler"
	"github.com/lfsh/market-api/internal/api/middleware"
	"github.com/lfsh/market-api/internal/api/view"
	"github.com/lfsh/market-api/internal/core/service"
	"github.com/lfsh/market-api/internal/infrastructure/config"
	"github.com/lfsh/market-api/internal/infrastructure/db/postgres"
	redisdb "github.com/lfsh/market-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Renderer = view.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("market"))
	e.Use(middleware.NoCache())
	e.Use(session.Middleware(cookieStore))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	marketRepo := postgres.NewMarketRepository(db)
	productRepo := postgres.NewProductRepository(db)
	challengeStore := redisdb.NewChallengeStore(rdb)

	authService := service.NewAuthService(userRepo, log)
	challengeService := service.NewChallengeService(challengeStore)
	catalogService := service.NewCatalogService(productRepo, marketRepo, log)

	authHandler := handler.NewAuthHandler(authService, challengeService)
	userHandler := handler.NewUserHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	marketHandler := handler.NewMarketHandler(catalogService)

	// --- Browser surface (cookie session) ---
	e.GET("/", authHandler.Root)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/dashboard", authHandler.Dashboard)

	// --- API surface (API key) ---
	requireKey := middleware.APIKey(authService)

	e.GET("/usuario", userHandler.Profile, requireKey)

	apiGroup := e.Group("/api", requireKey)
	apiGroup.GET("/productos", productHandler.List)
	apiGroup.POST("/productos", productHandler.Create)
	apiGroup.PUT("/productos/:id", productHandler.Update)
	apiGroup.DELETE("/productos/:id", productHandler.Delete)
	apiGroup.GET("/mercados", marketHandler.List)

	// --- Operational surface (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/test", handler.Test)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
