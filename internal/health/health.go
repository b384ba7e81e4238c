package health

import (
	"context"
	"net/http"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/database"
	"spice-catalog-backend/internal/httpx"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

type Status struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

type Handler struct {
	db      database.Pinger
	log     *zap.Logger
	started time.Time
}

func NewHandler(db database.Pinger, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log.Named("health"), started: time.Now()}
}

func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/health", h.Check)
}

// Check reports liveness and database reachability.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	st := Status{
		Status:   "ok",
		Database: "up",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
	}
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database ping failed", zap.Error(err))
		st.Status = "degraded"
		st.Database = "down"
		c.JSON(http.StatusServiceUnavailable, httpx.Envelope{
			Success: false,
			Message: "Database unavailable",
			Data:    st,
			Error:   apperr.CodeUnavailable,
		})
		return
	}
	httpx.OK(c, "OK", st)
}

var Module = fx.Module("health",
	fx.Provide(NewHandler),
)
