package category

import (
	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/httpx"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
	mw  *auth.Middleware
}

func NewHandler(svc *Service, mw *auth.Middleware) *Handler {
	return &Handler{svc: svc, mw: mw}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	g := api.Group("/categories")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.mw.Protect(), h.Create)
	g.PUT("/:id", h.mw.Protect(), h.Update)
	g.DELETE("/:id", h.mw.Protect(), h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", categories)
}

func (h *Handler) Get(c *gin.Context) {
	cat, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", cat)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Created(c, "Category created successfully", cat)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "Category updated successfully", cat)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "Category deleted successfully", nil)
}
