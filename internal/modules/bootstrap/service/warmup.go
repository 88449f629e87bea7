package service

import (
	"context"

	"kraken_bot/internal/assets"
	"kraken_bot/internal/modules/config"
	healthsvc "kraken_bot/internal/modules/health/service"
	krakensvc "kraken_bot/internal/modules/kraken_client/service"
	"kraken_bot/internal/notify"
	"kraken_bot/pkg/logger"

	"github.com/pkg/errors"
)

// Warmuper прогревает бота до старта цикла: одна проба Balance доказывает,
// что ключи рабочие, стартовые балансы уходят в лог. Ошибка здесь фатальна —
// с нерабочими кредами цикл не запускаем.
type Warmuper struct {
	cfg    *config.Config
	kraken *krakensvc.Client
	state  *healthsvc.State
	n      notify.Notifier
}

func NewWarmuper(
	cfg *config.Config,
	kraken *krakensvc.Client,
	state *healthsvc.State,
	n notify.Notifier,
) *Warmuper {
	return &Warmuper{cfg: cfg, kraken: kraken, state: state, n: n}
}

func (w *Warmuper) Warmup(ctx context.Context) error {
	baseAsset, codes := assets.Resolve(w.cfg.Pair)

	logger.Info("[WARMUP] trading pair: %s (base asset: %s)", w.cfg.Pair, baseAsset)
	logger.Info("[WARMUP] buy price: $%v | sell price: $%v | per trade: $%v | sell_all=%v",
		w.cfg.BuyPrice, w.cfg.SellPrice, w.cfg.DollarsPerTrade, w.cfg.SellAll)
	logger.Info("[WARMUP] interval: %s | min trade size: %.8f %s",
		w.cfg.CheckInterval, w.cfg.MinTradeSize, baseAsset)

	balances, err := w.kraken.Balance(ctx)
	if err != nil {
		return errors.Wrap(err, "warmup balance probe")
	}

	crypto := assets.BalanceFor(balances, codes)
	usd := assets.QuoteBalance(balances)
	logger.Info("[WARMUP] starting balances: %.8f %s | $%.2f USD", crypto, baseAsset, usd)

	w.n.Sendf("🚀 Бот запущен: %s | buy $%v / sell $%v | %.8f %s, $%.2f USD",
		w.cfg.Pair, w.cfg.BuyPrice, w.cfg.SellPrice, crypto, baseAsset, usd)

	w.state.SetReady(true)
	return nil
}
