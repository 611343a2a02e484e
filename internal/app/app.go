// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/intl-tools/translator-service/config"
	"github.com/intl-tools/translator-service/internal/http"
	"github.com/intl-tools/translator-service/internal/logger"
	"github.com/intl-tools/translator-service/internal/middleware"
	"github.com/intl-tools/translator-service/internal/repository"
	"github.com/intl-tools/translator-service/internal/service"
)

// App bundles the wired router with the resources it owns.
type App struct {
	Router *gin.Engine

	db      *sqlx.DB
	limiter *middleware.ShardedRateLimiter
}

// dbChecker adapts the store connection to the health checker interface.
type dbChecker struct {
	db *sqlx.DB
}

func (c *dbChecker) Check() error {
	return c.db.Ping()
}

// InitializeApp creates and wires all application dependencies: logger,
// store, repositories, services and router. It also bootstraps the admin
// account so a fresh deployment is immediately usable.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, error) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	db, err := repository.Open(cfg.Database.DataPath, cfg.Database.MaxConns, cfg.Database.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	languageRepo := repository.NewLanguageRepository(db)
	keyRepo := repository.NewKeyRepository(db)
	translationRepo := repository.NewTranslationRepository(db)
	requestRepo := repository.NewTranslationRequestRepository(db)

	identity := service.NewIdentityService(userRepo, tokenRepo)
	catalog := service.NewCatalogService(languageRepo, keyRepo)
	translations := service.NewTranslationService(translationRepo, requestRepo, keyRepo, languageRepo)
	exports := service.NewExportService(translationRepo, keyRepo, languageRepo, userRepo)

	if _, err := identity.EnsureAdminUser(ctx, cfg.Server.AdminPassword); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap admin user: %w", err)
	}

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("database", &dbChecker{db: db})

	var limiter *middleware.ShardedRateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	routerCfg := http.RouterConfig{
		Limiter:      limiter,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Identity:     identity,
		Catalog:      catalog,
		Translations: translations,
		Exports:      exports,
	}

	return &App{
		Router:  http.NewRouter(healthHandler, routerCfg),
		db:      db,
		limiter: limiter,
	}, nil
}

// Close releases the resources held by the application.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	return a.db.Close()
}
