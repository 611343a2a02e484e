package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/intl-tools/translator-service/internal/metrics"
	"github.com/intl-tools/translator-service/internal/middleware"
	"github.com/intl-tools/translator-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	// Limiter throttles requests per authenticated user, or per IP where no
	// user is known. Nil disables rate limiting.
	Limiter     *middleware.ShardedRateLimiter
	CORSOrigins []string

	Identity     service.IdentityService
	Catalog      service.CatalogService
	Translations service.TranslationService
	Exports      service.ExportService
}

// rateLimit returns the limiter middleware, or a pass-through when rate
// limiting is disabled. It must run after TokenAuth so authenticated
// requests are keyed by user rather than by IP.
func (cfg *RouterConfig) rateLimit() gin.HandlerFunc {
	if cfg.Limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return cfg.Limiter.RateLimit()
}

// NewRouter creates and configures the Gin router for the translator service.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)

	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerExportRoutes(router, &cfg)
	registerAPIRoutes(router, &cfg)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "Cache-Control", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	// Core middleware stack
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)
}

// registerExportRoutes registers the consumer-facing export endpoints.
// They accept the bearer token in a query parameter so the URLs can be
// embedded in build tooling, and compress responses.
func registerExportRoutes(router *gin.Engine, cfg *RouterConfig) {
	exportHandler := NewExportHandler(cfg.Exports, cfg.Catalog)

	export := router.Group("/export",
		middleware.Compression(),
		middleware.TokenAuth(cfg.Identity, true),
		cfg.rateLimit(),
	)
	export.GET("/translations/:lang", exportHandler.Translations)
	export.GET("/keys", exportHandler.Keys)
	export.GET("/all", exportHandler.All)
}

// registerAPIRoutes registers the authenticated management API.
func registerAPIRoutes(router *gin.Engine, cfg *RouterConfig) {
	authHandler := NewAuthHandler(cfg.Identity)
	userHandler := NewUserHandler(cfg.Identity)
	catalogHandler := NewCatalogHandler(cfg.Catalog)
	translationHandler := NewTranslationHandler(cfg.Translations)

	api := router.Group("/api")
	// Login is anonymous, so it is throttled by IP.
	api.POST("/auth/login", cfg.rateLimit(), authHandler.Login)

	protected := api.Group("", middleware.TokenAuth(cfg.Identity, false), cfg.rateLimit())

	protected.GET("/users", userHandler.List)
	protected.POST("/users", userHandler.Create)
	protected.PATCH("/users/:id", userHandler.Update)
	protected.PUT("/users/:id/password", userHandler.UpdatePassword)
	protected.DELETE("/users/:id", userHandler.Delete)

	protected.GET("/languages", catalogHandler.ListLanguages)
	protected.GET("/languages/:id", catalogHandler.GetLanguage)
	protected.POST("/languages", catalogHandler.CreateLanguage)
	protected.PATCH("/languages/:id", catalogHandler.UpdateLanguage)
	protected.DELETE("/languages/:id", catalogHandler.DeleteLanguage)

	protected.GET("/keys", catalogHandler.ListKeys)
	protected.GET("/keys/:id", catalogHandler.GetKey)
	protected.POST("/keys", catalogHandler.CreateKey)
	protected.PATCH("/keys/:id", catalogHandler.UpdateKey)
	protected.DELETE("/keys/:id", catalogHandler.DeleteKey)

	protected.GET("/keys/:id/translations", translationHandler.ForKey)
	protected.POST("/translations", translationHandler.Translate)
	protected.PUT("/translations/:id", translationHandler.Update)
	protected.DELETE("/translations/:id", translationHandler.Delete)

	protected.POST("/translation-requests", translationHandler.CreateRequest)
	protected.GET("/translation-requests", translationHandler.ListRequests)
	protected.PATCH("/translation-requests/:id", translationHandler.UpdateRequest)
	protected.POST("/translation-requests/:id/accept", translationHandler.AcceptRequest)
	protected.DELETE("/translation-requests/:id", translationHandler.DiscardRequest)
}
