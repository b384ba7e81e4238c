package faq

import (
	"errors"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/database"
	"spice-catalog-backend/internal/httpx"
	"spice-catalog-backend/internal/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Handler serves /faqs directly over the repository; there is no logic beyond
// validation.
type Handler struct {
	repo Repository
	mw   *auth.Middleware
	log  *zap.Logger
}

func NewHandler(repo Repository, mw *auth.Middleware, log *zap.Logger) *Handler {
	return &Handler{repo: repo, mw: mw, log: log.Named("faq.handler")}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	g := api.Group("/faqs")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.mw.Protect(), h.Create)
	g.PUT("/:id", h.mw.Protect(), h.Update)
	g.DELETE("/:id", h.mw.Protect(), h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	faqs, err := h.repo.List(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", faqs)
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
	f := &Faq{Question: req.Question, Answer: req.Answer, CreatedAt: now, UpdatedAt: now}
	if err := h.repo.Create(c.Request.Context(), f); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Created(c, "FAQ created successfully", f)
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
	httpx.OK(c, "FAQ updated successfully", f)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := database.ParseID(c.Param("id"))
	if !ok {
		httpx.Fail(c, apperr.NotFound("FAQ"))
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httpx.Fail(c, notFound(err))
		return
	}
	h.log.Info("faq deleted", zap.String("faq_id", id.Hex()))
	httpx.OK(c, "FAQ deleted successfully", nil)
}

func (h *Handler) find(c *gin.Context) (*Faq, error) {
	id, ok := database.ParseID(c.Param("id"))
	if !ok {
		return nil, apperr.NotFound("FAQ")
	}
	f, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		return nil, notFound(err)
	}
	return f, nil
}

func notFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("FAQ")
	}
	return err
}

var Module = fx.Module("faq",
	fx.Provide(NewRepository, NewHandler),
)
