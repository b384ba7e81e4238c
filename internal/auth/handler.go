package auth

import (
	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/httpx"
	"spice-catalog-backend/internal/validate"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
	mw  *Middleware
}

func NewHandler(svc *Service, mw *Middleware) *Handler {
	return &Handler{svc: svc, mw: mw}
}

// Register mounts /auth. limit guards the credential endpoints.
func (h *Handler) Register(api *gin.RouterGroup, limit gin.HandlerFunc) {
	g := api.Group("/auth")
	g.POST("/signup", limit, h.Signup)
	g.POST("/login", limit, h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.mw.Protect(), h.Me)

	super := g.Group("", h.mw.Protect(), h.mw.Superadmin())
	super.POST("/create-admin", h.CreateAdmin)
	super.GET("/admins", h.ListAdmins)
	super.DELETE("/admins/:id", h.DeleteAdmin)
	super.PUT("/admins/:id/status", h.SetStatus)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	res, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Created(c, "Admin registered successfully", res)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "Login successful", res)
}

// Logout always succeeds; tokens are not revoked server side.
func (h *Handler) Logout(c *gin.Context) {
	httpx.OK(c, "Logged out successfully", nil)
}

func (h *Handler) Me(c *gin.Context) {
	admin, ok := CurrentAdmin(c)
	if !ok {
		httpx.Fail(c, apperr.Unauthorized("Not authorized"))
		return
	}
	httpx.OK(c, "", admin)
}

func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	admin, err := h.svc.CreateAdmin(c.Request.Context(), req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.Created(c, "Admin created successfully", admin)
}

func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.svc.ListAdmins(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "", admins)
}

func (h *Handler) DeleteAdmin(c *gin.Context) {
	if err := h.svc.DeleteAdmin(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "Admin deleted successfully", nil)
}

func (h *Handler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.Fail(c, err)
		return
	}
	admin, err := h.svc.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	httpx.OK(c, "Admin status updated", admin)
}
