package kraken

import (
	"kraken_bot/internal/modules/kraken_client/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("kraken_client",
		fx.Provide(
			service.NewClient, // func(*config.Config) (*service.Client, error)
		),
	)
}
