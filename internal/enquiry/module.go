package enquiry

import "go.uber.org/fx"

func ensureIndexes(lc fx.Lifecycle, repo Repository) {
	if m, ok := repo.(*MongoRepository); ok {
		lc.Append(fx.Hook{OnStart: m.EnsureIndexes})
	}
}

var Module = fx.Module("enquiry",
	fx.Provide(
		NewRepository,
		NewService,
		NewHandler,
	),
	fx.Invoke(ensureIndexes),
)
