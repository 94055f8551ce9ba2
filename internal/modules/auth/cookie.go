package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notevault/core/internal/config"
)

func setAuthCookie(c *gin.Context, cfg *config.AppConfig, token string, ttl time.Duration) {
	c.SetSameSite(sameSiteMode(cfg))
	c.SetCookie(cfg.Cookie.Name, token, int(ttl.Seconds()), "/", "", cfg.Cookie.Secure, true)
}

func clearAuthCookie(c *gin.Context, cfg *config.AppConfig) {
	c.SetSameSite(sameSiteMode(cfg))
	c.SetCookie(cfg.Cookie.Name, "", -1, "/", "", cfg.Cookie.Secure, true)
}

func sameSiteMode(cfg *config.AppConfig) http.SameSite {
	if cfg.Cookie.SameSite == "strict" {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}
