package flag

import "go.uber.org/fx"

var Module = fx.Module("flag",
	fx.Provide(NewRepository, NewHandler),
)
