package docs

import "go.uber.org/fx"

var Module = fx.Module("documentation",
	fx.Provide(
		NewRepository,
		NewService,
		NewHandler,
	),
)
