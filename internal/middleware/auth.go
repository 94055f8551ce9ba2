package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/notevault/core/internal/pkg/jwt"
	"github.com/notevault/core/internal/pkg/response"
	sessionpkg "github.com/notevault/core/internal/pkg/session"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeySID    = "session_id"
)

// Auth returns a middleware that requires a valid session cookie. Every
// failure mode collapses to the same 401: no cookie, a bad or expired token,
// and a token whose session row was revoked all look identical to the client.
func Auth(db *gorm.DB, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ValidateCookie(db, c, cookieName)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeySID, claims.SessionID)
		sessionpkg.Touch(db, claims.SessionID, claims.UserID)
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid session cookie is present, but
// does not block the request.
func OptionalAuth(db *gorm.DB, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := ValidateCookie(db, c, cookieName); err == nil && claims.UserID != "" {
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeySID, claims.SessionID)
			sessionpkg.Touch(db, claims.SessionID, claims.UserID)
		}
		c.Next()
	}
}

// SessionIDFromRequest resolves the session id carried by the request's auth
// cookie. A missing cookie, malformed token, and bad signature all collapse
// to "".
func SessionIDFromRequest(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	claims, err := jwt.Parse(strings.TrimSpace(cookie.Value))
	if err != nil {
		return ""
	}
	return claims.SessionID
}

// ValidateCookie reads the auth cookie, verifies the token, and checks the
// referenced session row still exists.
func ValidateCookie(db *gorm.DB, c *gin.Context, cookieName string) (*jwt.Claims, error) {
	raw, err := c.Cookie(cookieName)
	if err != nil {
		return nil, errors.New("auth cookie is required")
	}
	return ValidateToken(db, raw)
}

// ValidateToken verifies a session token and returns its claims.
func ValidateToken(db *gorm.DB, rawToken string) (*jwt.Claims, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.SessionID == "" {
		return nil, errors.New("token claims incomplete")
	}

	active, err := sessionpkg.IsActive(db, claims.SessionID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errors.New("session expired or revoked")
	}
	return claims, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentSessionID extracts the authenticated session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request carries a valid session.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}
