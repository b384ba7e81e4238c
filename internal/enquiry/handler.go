package enquiry

import (
	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/httpx"
	"spice-catalog-backend/internal/pagination"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
	mw  *auth.Middleware
}

func NewHandler(svc *Service, mw *auth.Middleware) *Handler {
	return &Handler{svc: svc, mw: mw}
}

// Register mounts /enquiries. limit guards the public submission endpoint.
func (h *Handler) Register(api *gin.RouterGroup, limit gin.HandlerFunc) {
	g := api.Group("/enquiries")
	g.POST("", limit, h.Create)

	admin := g.Group("", h.mw.Protect())
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.PUT("/:id", h.UpdateStatus)
	admin.PUT("/:id/status", h.UpdateStatus)
	admin.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	e, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Created(c, "Enquiry submitted successfully", e)
}

func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		Type:   Type(c.Query("type")),
		Status: Status(c.Query("status")),
	}
	res, err := h.svc.List(c.Request.Context(), filter, pagination.Parse(c.Query("page"), c.Query("limit")))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", res)
}

func (h *Handler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", detail)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	e, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "Enquiry status updated", e)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "Enquiry deleted successfully", nil)
}
