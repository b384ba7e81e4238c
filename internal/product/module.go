package product

import (
	"context"

	"go.uber.org/fx"
)

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

var Module = fx.Module("product",
	fx.Provide(
		NewRepository,
		NewService,
		NewHandler,
	),
	fx.Invoke(ensureIndexes),
)
