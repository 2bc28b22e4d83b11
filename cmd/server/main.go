package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"folio_app_echo/internal/app"
	"folio_app_echo/internal/config"
	"folio_app_echo/internal/handlers"
	siteMiddleware "folio_app_echo/internal/middleware"
	"folio_app_echo/internal/services"
	"folio_app_echo/web/templates"
)

func main() {
	// Load environment variables
	if !config.LoadEnv() {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	site, err := config.LoadSite(cfg.SiteConfigPath)
	if err != nil {
		logger.Fatal("failed to load site config", zap.String("path", cfg.SiteConfigPath), zap.Error(err))
	}

	// Load content once; failed resources are logged and skipped
	loader := services.NewContentLoader(newFetcher(cfg, logger), logger)
	store := loader.LoadAll(context.Background(), site.ProjectIDs, site.BlogPostIDs, site.Profile.FullName)

	prefs, closePrefs, err := newPreferenceStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize preference store", zap.String("backend", cfg.PreferenceBackend), zap.Error(err))
	}
	defer closePrefs()

	sessions := app.NewSessionStore(&app.Site{
		Title:       site.Title,
		Profile:     site.Profile,
		Store:       store,
		Preferences: prefs,
		Logger:      logger,
	}, cfg.SessionTTL, cfg.MaxSessions)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = siteMiddleware.CustomErrorHandler

	e.Renderer = templates.NewRenderer(templates.Default())

	// Static file serving
	e.Static("/static", "web/static")
	e.Static("/images", "web/static/images")
	e.Static("/content", cfg.ContentDir)

	// Portfolio routes carry the visitor and view session cookies
	pages := e.Group("", siteMiddleware.Sessions())
	handlers.RegisterRoutes(pages, handlers.NewPortfolioHandler(sessions, logger))

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newFetcher(cfg *config.Config, logger *zap.Logger) services.Fetcher {
	if cfg.ContentBaseURL != "" {
		logger.Info("loading content over HTTP", zap.String("base_url", cfg.ContentBaseURL))
		return services.NewHTTPFetcher(cfg.ContentBaseURL)
	}
	logger.Info("loading content from disk", zap.String("dir", cfg.ContentDir))
	return services.NewDirFetcher(os.DirFS(cfg.ContentDir))
}

// newPreferenceStore opens the configured backend. The returned func releases it.
func newPreferenceStore(cfg *config.Config, logger *zap.Logger) (services.PreferenceStore, func(), error) {
	switch cfg.PreferenceBackend {
	case config.BackendRedis:
		cache, err := services.NewRedisCache(cfg.RedisURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return services.NewRedisPreferenceStore(cache, 0), func() { _ = cache.Close() }, nil

	case config.BackendPostgres:
		db, err := services.InitDB(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := services.AutoMigrate(db, logger); err != nil {
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return services.NewGormPreferenceStore(db), closeDB, nil

	default:
		return services.NewMemoryPreferenceStore(), func() {}, nil
	}
}
