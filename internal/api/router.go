package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/newsdesk/newsroom-api/internal/api/handler"
	"github.com/newsdesk/newsroom-api/internal/api/middleware"
	"github.com/newsdesk/newsroom-api/internal/core/service"
	"github.com/newsdesk/newsroom-api/internal/infrastructure/config"
	mongodb "github.com/newsdesk/newsroom-api/internal/infrastructure/db/mongo"
	redisdb "github.com/newsdesk/newsroom-api/internal/infrastructure/db/redis"
	"github.com/newsdesk/newsroom-api/internal/realtime"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the connection registry (owned by the caller's
// lifecycle: constructed at server start, no teardown beyond process exit).
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *realtime.Registry) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("newsroom"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	articleRepo := mongodb.NewArticleRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	registry := realtime.NewRegistry(log)
	dispatcher := realtime.NewDispatcher(registry, log)

	authService := service.NewAuthService(userRepo, throttle, cfg.JWTSecret, time.Hour, log)
	userService := service.NewUserService(userRepo, log)
	articleService := service.NewArticleService(articleRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	articleHandler := handler.NewArticleHandler(articleService)
	uploadHandler := handler.NewUploadHandler(articleService, cfg.UploadDir)
	wsHandler := handler.NewWebsocketHandler(registry, log)

	authn := middleware.Authenticate(authService)
	adminOnly := middleware.Authorize(middleware.AdminOnly, articleRepo)
	authorOrAdmin := middleware.Authorize(middleware.AuthorOrAdmin, articleRepo)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Realtime channel ---
	e.GET("/ws", wsHandler.Serve)

	// --- Articles: public reads ---
	articles := e.Group("/v1/articles")
	articles.GET("", articleHandler.List)
	articles.GET("/search", articleHandler.Search)
	articles.GET("/:id", articleHandler.Get)
	articles.GET("/title/:title", articleHandler.GetByTitle)
	articles.GET("/author/:author", articleHandler.GetByAuthor)

	// --- Articles: gated mutations ---
	articles.POST("", articleHandler.Create, authn, authorOrAdmin)
	articles.PUT("/:id", articleHandler.Update, authn, authorOrAdmin)
	articles.DELETE("/:id", articleHandler.Delete, authn, authorOrAdmin)
	articles.POST("/:id/image", uploadHandler.AttachImage, authn, authorOrAdmin)
	articles.PUT("/title/:title", articleHandler.UpdateByTitle, authn, authorOrAdmin)
	articles.DELETE("/title/:title", articleHandler.DeleteByTitle, authn, authorOrAdmin)
	articles.PUT("/author/:author", articleHandler.UpdateByAuthor, authn, authorOrAdmin)
	articles.DELETE("/author/:author", articleHandler.DeleteByAuthor, authn, authorOrAdmin)

	// --- Users ---
	users := e.Group("/v1/users", authn)
	users.GET("/me", userHandler.Me)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get, adminOnly)
	users.PUT("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)
	users.DELETE("/email/:email", userHandler.DeleteByEmail, adminOnly)
	users.DELETE("/username/:username", userHandler.DeleteByUsername, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	return e, registry
}
