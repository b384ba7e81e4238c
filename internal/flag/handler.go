package flag

import (
	"errors"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/database"
	"spice-catalog-backend/internal/httpx"
	"spice-catalog-backend/internal/validate"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
	mw   *auth.Middleware
}

func NewHandler(repo Repository, mw *auth.Middleware) *Handler {
	return &Handler{repo: repo, mw: mw}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	g := api.Group("/flags")
	g.GET("", h.List)
	g.GET("/:id", h.Get)

	admin := g.Group("", h.mw.Protect())
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	flags, err := h.repo.List(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", flags)
}

func (h *Handler) Get(c *gin.Context) {
	f, err := h.find(c)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", f)
}

func (h *Handler) Create(c *gin.Context) {
	var req Request
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	req.normalize()
	if err := validate.Struct(req); err != nil {
		httpx.Fail(c, err)
		return
	}

	now := time.Now().UTC()
	f := &Flag{Name: req.Name, ImageURL: req.ImageURL, CreatedAt: now, UpdatedAt: now}
	if err := h.repo.Create(c.Request.Context(), f); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Created(c, "Flag created successfully", f)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	f, err := h.find(c)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	if req.apply(f) {
		f.UpdatedAt = time.Now().UTC()
		if err := h.repo.Replace(c.Request.Context(), f); err != nil {
			httpx.Fail(c, notFound(err))
			return
		}
	}
	httpx.OK(c, "Flag updated successfully", f)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := database.ParseID(c.Param("id"))
	if !ok {
		httpx.Fail(c, apperr.NotFound("Flag"))
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httpx.Fail(c, notFound(err))
		return
	}
	httpx.OK(c, "Flag deleted successfully", nil)
}

func (h *Handler) find(c *gin.Context) (*Flag, error) {
	id, ok := database.ParseID(c.Param("id"))
	if !ok {
		return nil, apperr.NotFound("Flag")
	}
	f, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		return nil, notFound(err)
	}
	return f, nil
}

func notFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Flag")
	}
	return err
}
