package bootstrap

import (
	"context"
	"time"

	bootstrap "kraken_bot/internal/modules/bootstrap/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			bootstrap.NewWarmuper,
		),
		fx.Invoke(func(lc fx.Lifecycle, wu *bootstrap.Warmuper) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					wctx, cancel := context.WithTimeout(ctx, 30*time.Second)
					defer cancel()
					return wu.Warmup(wctx)
				},
			})
		}),
	)
}
