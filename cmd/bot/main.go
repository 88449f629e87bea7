package main

import (
	"context"

	"kraken_bot/internal/modules/bootstrap"
	"kraken_bot/internal/modules/config"
	"kraken_bot/internal/modules/health"
	kraken "kraken_bot/internal/modules/kraken_client"
	krakensvc "kraken_bot/internal/modules/kraken_client/service"
	krakenws "kraken_bot/internal/modules/kraken_ws"
	"kraken_bot/internal/notify"
	"kraken_bot/internal/trader"
	"kraken_bot/pkg/logger"
	"kraken_bot/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
)

const serviceName = "kraken-bot"

func main() {
	// .env опционален: в проде всё приходит из окружения.
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			newNotifier,
			newTracer,
		),
		config.Module(),
		kraken.Module(),
		krakenws.Module(),
		health.Module(),
		bootstrap.Module(),
		trader.Module(),
		// Логгер поднимаем первым инвоком, до любых lifecycle-хуков.
		fx.Invoke(func(cfg *config.Config) {
			logger.SetServiceName(serviceName)
			logger.Init(cfg.LogLevel)
		}),
		fx.Invoke(runTelegram),
	)
	app.Run()
}

// Notifier: если TELEGRAM_* не задан — пишем уведомления в лог.
func newNotifier(cfg *config.Config, kr *krakensvc.Client) notify.Notifier {
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		if tg, err := notify.NewTelegram(cfg, kr); err == nil {
			return tg
		}
	}
	return notify.NewStdout()
}

func newTracer(lc fx.Lifecycle, cfg *config.Config) opentracing.Tracer {
	tracing.SetServiceName(serviceName)
	tracer, closer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Jaeger.Host,
		Port: cfg.Jaeger.Port,
	})
	if err != nil {
		// Трейсинг — вспомогательный: без агента работаем дальше.
		return opentracing.NoopTracer{}
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closer()
			return nil
		},
	})
	return tracer
}

func runTelegram(lc fx.Lifecycle, n notify.Notifier) {
	tg, ok := n.(*notify.Telegram)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			tg.Start(context.Background())
			return nil
		},
		OnStop: func(context.Context) error {
			tg.Stop()
			return nil
		},
	})
}
