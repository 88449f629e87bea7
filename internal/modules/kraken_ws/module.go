package krakenws

import (
	"context"

	"kraken_bot/internal/modules/kraken_ws/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("kraken_ws",
		fx.Provide(
			service.NewClient,
		),
		fx.Invoke(func(lc fx.Lifecycle, c *service.Client) {
			streamCtx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go c.Start(streamCtx)
					return nil
				},
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	)
}
