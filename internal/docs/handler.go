package docs

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
	g := api.Group("/documentation")
	g.GET("", h.mw.Optional(), h.List)
	g.GET("/:id", h.mw.Optional(), h.Get)
	g.POST("", h.mw.Protect(), h.Create)
	g.PUT("/:id", h.mw.Protect(), h.Update)
	g.DELETE("/:id", h.mw.Protect(), h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context(), Status(c.Query("status")), auth.IsStaff(c))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", docs)
}

func (h *Handler) Get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"), auth.IsStaff(c))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", d)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	d, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Created(c, "Documentation created successfully", d)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	d, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "Documentation updated successfully", d)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "Documentation deleted successfully", nil)
}
