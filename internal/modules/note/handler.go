package note

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notevault/core/internal/middleware"
	"github.com/notevault/core/internal/models"
	"github.com/notevault/core/internal/pkg/markdown"
	"github.com/notevault/core/internal/pkg/pagination"
	"github.com/notevault/core/internal/pkg/response"
	"github.com/notevault/core/internal/pkg/validate"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	n := rg.Group("/notes", authMW)

	n.GET("", h.list)
	n.POST("", h.create)
	n.DELETE("", h.destroyAll)
	n.GET("/:id", h.get)
	n.PUT("/:id", h.update)
	n.DELETE("/:id", h.destroy)
	n.GET("/:id/html", h.html)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	notes, page, err := h.svc.List(middleware.CurrentUserID(c), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]noteResponse, len(notes))
	for i, n := range notes {
		items[i] = toNoteResponse(&n)
	}
	response.Paged(c, items, page)
}

func (h *Handler) create(c *gin.Context) {
	var dto NoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, validate.Format(err))
		return
	}

	n, err := h.svc.Create(middleware.CurrentUserID(c), dto.Content)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, toNoteResponse(n))
}

func (h *Handler) get(c *gin.Context) {
	n, err := h.svc.Get(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if n == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toNoteResponse(n))
}

func (h *Handler) update(c *gin.Context) {
	var dto NoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, validate.Format(err))
		return
	}

	n, err := h.svc.Update(c.Param("id"), middleware.CurrentUserID(c), dto.Content)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if n == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toNoteResponse(n))
}

func (h *Handler) destroy(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) destroyAll(c *gin.Context) {
	if err := h.svc.DeleteAll(middleware.CurrentUserID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) html(c *gin.Context) {
	n, err := h.svc.Get(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if n == nil {
		response.NotFound(c)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markdown.Render(n.Content)))
}

func toNoteResponse(n *models.NoteModel) noteResponse {
	return noteResponse{
		ID:       n.ID,
		Content:  n.Content,
		Created:  n.CreatedAt,
		Modified: n.UpdatedAt,
	}
}
