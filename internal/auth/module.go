package auth

import (
	"context"

	"spice-catalog-backend/internal/config"

	"go.uber.org/fx"
)

func newTokenService(cfg config.Config) (*TokenService, error) {
	return NewTokenService(cfg.JWTSecret, cfg.JWTExpire)
}

func ensureIndexes(lc fx.Lifecycle, repo Repository) {
	m, ok := repo.(*MongoRepository)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return m.EnsureIndexes(ctx)
		},
	})
}

var Module = fx.Module("auth",
	fx.Provide(
		NewRepository,
		newTokenService,
		NewService,
		NewMiddleware,
		NewHandler,
	),
	fx.Invoke(ensureIndexes),
)
