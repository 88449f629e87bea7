package trader

import (
	"context"

	krakensvc "kraken_bot/internal/modules/kraken_client/service"
	wssvc "kraken_bot/internal/modules/kraken_ws/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("trader",
		fx.Provide(
			New,
			func(c *krakensvc.Client) Exchange { return c },
			func(c *wssvc.Client) PriceFeed { return c },
		),
		fx.Invoke(run),
	)
}

func run(lc fx.Lifecycle, t *Trader) {
	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go t.Run(runCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-t.Done():
			case <-ctx.Done():
			}
			t.Cleanup(ctx)
			return nil
		},
	})
}
