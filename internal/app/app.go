// Package app wires configuration, storage, and HTTP routing together.
package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/notevault/core/internal/config"
	"github.com/notevault/core/internal/database"
	"github.com/notevault/core/internal/middleware"
	"github.com/notevault/core/internal/pkg/jwt"
	pkgredis "github.com/notevault/core/internal/pkg/redis"
	"github.com/notevault/core/internal/pkg/requestinfo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg       *config.AppConfig
	router    *gin.Engine
	db        *gorm.DB
	redis     *pkgredis.Client
	logger    *zap.Logger
	collector *requestinfo.Collector
}

// New initializes the application: config → DB → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	jwt.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-idempotence"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	collector := requestinfo.NewCollector(requestinfo.Options{
		IncludeLocation:    cfg.RequestInfo.Location,
		IncludeDevice:      cfg.RequestInfo.Device,
		GeoProvider:        cfg.RequestInfo.GeoProvider,
		FallbackToLanguage: cfg.RequestInfo.FallbackToLanguage,
		LookupEndpoint:     cfg.RequestInfo.LookupEndpoint,
		LookupTimeout:      cfg.RequestInfo.LookupTimeout,
	}, logger)

	app := &App{
		cfg:       cfg,
		router:    router,
		db:        db,
		redis:     rc,
		logger:    logger,
		collector: collector,
	}
	app.registerRoutes(rc)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases held connections.
func (a *App) Shutdown() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
