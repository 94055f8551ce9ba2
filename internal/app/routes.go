package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notevault/core/internal/middleware"
	"github.com/notevault/core/internal/modules/auth"
	"github.com/notevault/core/internal/modules/note"
	"github.com/notevault/core/internal/modules/user"
	pkgredis "github.com/notevault/core/internal/pkg/redis"
	"github.com/notevault/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	cookieName := a.cfg.Cookie.Name
	authMW := middleware.Auth(db, cookieName)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw(), cookieName))

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(db, cookieName))

	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"timestamp": time.Since(processStart).Milliseconds()})
	})

	auth.NewHandler(auth.NewService(db), a.cfg, a.collector).RegisterRoutes(api, authMW)
	user.NewHandler(user.NewService(db), a.cfg).RegisterRoutes(api, authMW)
	note.NewHandler(note.NewService(db)).RegisterRoutes(api, authMW)
}

var processStart = time.Now()
