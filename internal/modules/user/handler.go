package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notevault/core/internal/config"
	"github.com/notevault/core/internal/middleware"
	"github.com/notevault/core/internal/models"
	"github.com/notevault/core/internal/pkg/response"
	"github.com/notevault/core/internal/pkg/validate"
)

type Handler struct {
	svc *Service
	cfg *config.AppConfig
}

func NewHandler(svc *Service, cfg *config.AppConfig) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	u := rg.Group("/user", authMW)

	u.GET("", h.profile)
	u.PATCH("", h.update)
	u.DELETE("", h.destroy)
}

func (h *Handler) profile(c *gin.Context) {
	u, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, toUserResponse(u))
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, validate.Format(err))
		return
	}
	if dto.NewPassword != "" && dto.NewPassword != dto.NewPasswordConfirmation {
		response.ValidationFailed(c, map[string]string{
			"new_password_confirmation": "Passwords do not match!",
		})
		return
	}

	u, err := h.svc.Update(middleware.CurrentUserID(c), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errWrongPassword):
			response.ValidationFailed(c, map[string]string{
				"current_password": "Wrong password",
			})
		case errors.Is(err, errEmailTaken):
			response.ValidationFailed(c, map[string]string{
				"email": "User already exists!",
			})
		case errors.Is(err, errUserNotFound):
			response.Unauthorized(c)
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, toUserResponse(u))
}

func (h *Handler) destroy(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c)); err != nil {
		if errors.Is(err, errUserNotFound) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	if h.cfg.Cookie.SameSite == "strict" {
		c.SetSameSite(http.SameSiteStrictMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cfg.Cookie.Name, "", -1, "/", "", h.cfg.Cookie.Secure, true)
	response.NoContent(c)
}

func toUserResponse(u *models.UserModel) userResponse {
	flags := u.FeatureFlags
	if flags == nil {
		flags = map[string]any{}
	}
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		FeatureFlags: flags,
		Created:      u.CreatedAt,
		Modified:     u.UpdatedAt,
	}
}
