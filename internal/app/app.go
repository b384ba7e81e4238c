// Package app assembles the fx dependency graph of the API server.
package app

import (
	"spice-catalog-backend/internal/auth"
	"spice-catalog-backend/internal/cache"
	"spice-catalog-backend/internal/category"
	"spice-catalog-backend/internal/config"
	"spice-catalog-backend/internal/database"
	"spice-catalog-backend/internal/docs"
	"spice-catalog-backend/internal/enquiry"
	"spice-catalog-backend/internal/faq"
	"spice-catalog-backend/internal/flag"
	"spice-catalog-backend/internal/gemini"
	"spice-catalog-backend/internal/health"
	"spice-catalog-backend/internal/logger"
	"spice-catalog-backend/internal/product"
	"spice-catalog-backend/internal/server"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Infrastructure provides logging, storage and caching without any HTTP surface.
func Infrastructure(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		logger.Module,
		database.Module,
		cache.Module,
	)
}

// Options is the full API server graph.
func Options(cfg config.Config) fx.Option {
	return fx.Options(
		Infrastructure(cfg),

		auth.Module,
		product.Module,
		enquiry.Module,
		docs.Module,
		category.Module,
		faq.Module,
		flag.Module,
		gemini.Module,
		health.Module,

		server.Module,
	)
}
