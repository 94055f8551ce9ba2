package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notevault/core/internal/config"
	"github.com/notevault/core/internal/middleware"
	"github.com/notevault/core/internal/models"
	jwtpkg "github.com/notevault/core/internal/pkg/jwt"
	"github.com/notevault/core/internal/pkg/requestinfo"
	"github.com/notevault/core/internal/pkg/response"
	sessionpkg "github.com/notevault/core/internal/pkg/session"
	"github.com/notevault/core/internal/pkg/validate"
)

type Handler struct {
	svc       *Service
	cfg       *config.AppConfig
	collector *requestinfo.Collector
}

func NewHandler(svc *Service, cfg *config.AppConfig, collector *requestinfo.Collector) *Handler {
	return &Handler{svc: svc, cfg: cfg, collector: collector}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")

	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.POST("/sign-out", h.signOut)
	a.GET("/sessions", authMW, h.listSessions)
	a.POST("/revoke-session", authMW, h.revokeSession)
	a.POST("/revoke-sessions", authMW, h.revokeSessions)
	a.POST("/revoke-other-sessions", authMW, h.revokeOtherSessions)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, validate.Format(err))
		return
	}
	if dto.Password != dto.PasswordConfirmation {
		response.ValidationFailed(c, map[string]string{
			"password_confirmation": "Passwords do not match!",
		})
		return
	}

	u, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			response.ValidationFailed(c, map[string]string{
				"email": "User already exists!",
			})
			return
		}
		response.InternalError(c, err)
		return
	}

	if err := h.signIn(c, u.ID, dto.RememberMe); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toUserResponse(u))
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, validate.Format(err))
		return
	}

	u, err := h.svc.Login(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			response.ValidationFailed(c, map[string]string{
				"email": "Email/Password combo not found",
			})
			return
		}
		response.InternalError(c, err)
		return
	}

	if err := h.signIn(c, u.ID, dto.RememberMe); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, toUserResponse(u))
}

// signIn snapshots the request origin, persists the session, and installs
// the cookie.
func (h *Handler) signIn(c *gin.Context, userID string, remember bool) error {
	info := h.collector.Collect(c.Request)
	ttl := h.sessionTTL(remember)
	token, _, err := h.svc.IssueSession(userID, info, ttl)
	if err != nil {
		return err
	}
	setAuthCookie(c, h.cfg, token, ttl)
	return nil
}

func (h *Handler) signOut(c *gin.Context) {
	if raw, err := c.Cookie(h.cfg.Cookie.Name); err == nil {
		if claims, err := jwtpkg.Parse(raw); err == nil {
			if claims.SessionID != "" && claims.UserID != "" {
				_ = sessionpkg.Delete(h.svc.db, claims.SessionID, claims.UserID)
			}
		}
	}
	clearAuthCookie(c, h.cfg)
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) listSessions(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	current := middleware.CurrentSessionID(c)

	sessions, err := sessionpkg.ListForUser(h.svc.db, userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]sessionResponse, len(sessions))
	for i, s := range sessions {
		items[i] = sessionResponse{
			ID:        s.ID,
			IPAddress: s.IPAddress,
			UserAgent: s.UserAgent,
			Location:  s.Location,
			Device:    s.Device,
			IsCurrent: s.ID == current,
			Created:   s.CreatedAt,
			Modified:  s.UpdatedAt,
		}
	}
	response.OK(c, items)
}

func (h *Handler) revokeSession(c *gin.Context) {
	var dto RevokeSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, validate.Format(err))
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := sessionpkg.Delete(h.svc.db, dto.ID, userID); err != nil {
		response.InternalError(c, err)
		return
	}
	if dto.ID == middleware.CurrentSessionID(c) {
		clearAuthCookie(c, h.cfg)
	}
	response.OK(c, gin.H{"status": true})
}

func (h *Handler) revokeSessions(c *gin.Context) {
	if err := sessionpkg.DeleteAllForUser(h.svc.db, middleware.CurrentUserID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	clearAuthCookie(c, h.cfg)
	response.OK(c, gin.H{"status": true})
}

func (h *Handler) revokeOtherSessions(c *gin.Context) {
	err := sessionpkg.DeleteAllOthers(h.svc.db, middleware.CurrentSessionID(c), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"status": true})
}

func (h *Handler) sessionTTL(remember bool) time.Duration {
	if remember {
		return h.cfg.Session.RememberTTL
	}
	return h.cfg.Session.TTL
}

func toUserResponse(u *models.UserModel) userResponse {
	return userResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Created:  u.CreatedAt,
		Modified: u.UpdatedAt,
	}
}
