package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/category"
	"spice-catalog-backend/internal/config"
	"spice-catalog-backend/internal/docs"
	"spice-catalog-backend/internal/enquiry"
	"spice-catalog-backend/internal/faq"
	"spice-catalog-backend/internal/flag"
	"spice-catalog-backend/internal/gemini"
	"spice-catalog-backend/internal/health"
	"spice-catalog-backend/internal/httpx"
	"spice-catalog-backend/internal/middleware"
	"spice-catalog-backend/internal/product"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Params collects everything the router mounts.
type Params struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry
	Metrics  *middleware.HTTPMetrics
	Redis    *redis.Client `optional:"true"`

	Auth          *auth.Handler
	Products      *product.Handler
	Enquiries     *enquiry.Handler
	Documentation *docs.Handler
	Categories    *category.Handler
	Faqs          *faq.Handler
	Flags         *flag.Handler
	Gemini        *gemini.Handler
	Health        *health.Handler
}

func NewEngine(p Params) *gin.Engine {
	if !p.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(httpx.Recovery(p.Log, p.Config.IsDevelopment()))
	r.Use(p.Metrics.Handler())
	r.Use(cors.New(corsConfig(p.Config)))
	r.Use(httpx.ErrorHandler(p.Log, p.Config.IsDevelopment()))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{})))

	limit := middleware.NewRateLimiter(p.Redis, p.Config.RateLimitRequests, p.Config.RateLimitWindow, p.Log).Handler()

	api := r.Group("/api")
	p.Health.Register(api)
	p.Auth.Register(api, limit)
	p.Products.Register(api)
	p.Enquiries.Register(api, limit)
	p.Documentation.Register(api)
	p.Categories.Register(api)
	p.Faqs.Register(api)
	p.Flags.Register(api)
	p.Gemini.Register(api)

	r.NoRoute(httpx.NotFoundRoute)
	return r
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(c.AllowOrigins) == 0 && !cfg.IsProduction() {
		c.AllowOrigins = nil
		c.AllowOriginFunc = func(string) bool { return true }
	}
	return c
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("http server listening",
				zap.String("addr", ln.Addr().String()),
				zap.String("env", cfg.Environment),
				zap.String("storage", cfg.StorageDriver))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			log.Info("shutting down http server")
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(
		middleware.NewRegistry,
		middleware.NewHTTPMetrics,
		NewEngine,
	),
	fx.Invoke(run),
)
