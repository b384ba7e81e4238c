package gemini

import (
	"strings"

	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/httpx"
	"spice-catalog-backend/internal/validate"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

type GenerateRequest struct {
	ProductName string `json:"productName" validate:"required"`
	Category    string `json:"category"`
}

type Handler struct {
	client *Client
	mw     *auth.Middleware
}

func NewHandler(client *Client, mw *auth.Middleware) *Handler {
	return &Handler{client: client, mw: mw}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	api.POST("/gemini/generate-product-details", h.mw.Protect(), h.Generate)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Fail(c, err)
		return
	}
	req.ProductName = strings.TrimSpace(req.ProductName)
	req.Category = strings.TrimSpace(req.Category)
	if err := validate.Struct(req); err != nil {
		httpx.Fail(c, err)
		return
	}

	details, err := h.client.GenerateProductDetails(c.Request.Context(), req.ProductName, req.Category)
	if err != nil {
		httpx.Fail(c, asAppError(err))
		return
	}
	httpx.OK(c, "Product details generated", details)
}

var Module = fx.Module("gemini",
	fx.Provide(NewClient, NewHandler),
)
