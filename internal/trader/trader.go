package trader

import (
	"context"
	"time"

	"kraken_bot/internal/assets"
	"kraken_bot/internal/models"
	"kraken_bot/internal/modules/config"
	healthsvc "kraken_bot/internal/modules/health/service"
	krakensvc "kraken_bot/internal/modules/kraken_client/service"
	"kraken_bot/internal/notify"
	"kraken_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
)

// Exchange — то, что трейдеру нужно от биржи.
type Exchange interface {
	Ticker(ctx context.Context, pair string) (float64, error)
	Balance(ctx context.Context) (map[string]float64, error)
	AddOrder(ctx context.Context, pair string, side models.Side, volume, price float64) (string, error)
	OpenOrders(ctx context.Context) (map[string]models.OpenOrder, error)
	CancelOrder(ctx context.Context, txid string) (bool, error)
}

// PriceFeed — последняя цена из ws-стрима, если он жив.
type PriceFeed interface {
	LastPrice() (price float64, at time.Time, ok bool)
}

// Trader гоняет основной цикл: снять срез ордеров и балансов, прогнать
// машину состояний, исполнить решения. Весь стейт — на бирже, сам трейдер
// между тиками ничего не помнит, поэтому рестарт в любой момент безопасен.
type Trader struct {
	cfg      *config.Config
	exchange Exchange
	feed     PriceFeed
	state    *healthsvc.State
	notifier notify.Notifier
	tracer   opentracing.Tracer

	assetName string
	codes     []string

	done chan struct{}
}

func New(
	cfg *config.Config,
	exchange Exchange,
	feed PriceFeed,
	state *healthsvc.State,
	notifier notify.Notifier,
	tracer opentracing.Tracer,
) *Trader {
	name, codes := assets.Resolve(cfg.Pair)
	return &Trader{
		cfg:       cfg,
		exchange:  exchange,
		feed:      feed,
		state:     state,
		notifier:  notifier,
		tracer:    tracer,
		assetName: name,
		codes:     codes,
		done:      make(chan struct{}),
	}
}

// Run крутит цикл до отмены контекста. Ошибки одного тика не валят цикл:
// биржа периодически пятисотит, следующий тик начинает с чистого среза.
func (t *Trader) Run(ctx context.Context) {
	defer close(t.done)

	logger.Info("[TRADER] запуск цикла: пара %s, buy $%v / sell $%v, $%v за сделку, интервал %s",
		t.cfg.Pair, t.cfg.BuyPrice, t.cfg.SellPrice, t.cfg.DollarsPerTrade, t.cfg.CheckInterval)

	for iteration := 1; ; iteration++ {
		t.tick(ctx, iteration)
		select {
		case <-ctx.Done():
			logger.Info("[TRADER] цикл остановлен после %d итераций", iteration)
			return
		case <-time.After(t.cfg.CheckInterval):
		}
	}
}

// Done закрывается после выхода из Run.
func (t *Trader) Done() <-chan struct{} { return t.done }

func (t *Trader) tick(ctx context.Context, iteration int) {
	span := t.tracer.StartSpan("trader.tick")
	span.SetTag("pair", t.cfg.Pair)
	span.SetTag("iteration", iteration)
	defer span.Finish()
	ctx = opentracing.ContextWithSpan(ctx, span)

	logger.Info("[TICK] --- итерация %d ---", iteration)

	open, err := t.exchange.OpenOrders(ctx)
	if err != nil {
		span.SetTag("error", true)
		logger.Error("[TICK] открытые ордера: %v — пропускаем итерацию", err)
		return
	}
	orders := pairOrders(open, t.cfg.Pair)

	raw, err := t.exchange.Balance(ctx)
	if err != nil {
		span.SetTag("error", true)
		logger.Error("[TICK] балансы: %v — пропускаем итерацию", err)
		return
	}
	bal := models.Balance{
		Crypto: assets.BalanceFor(raw, t.codes),
		USD:    assets.QuoteBalance(raw),
	}

	t.logPrice(ctx, bal)

	for _, d := range Decide(t.cfg, orders, bal) {
		t.state.SetLastDecision(string(d.Kind))
		span.SetTag("decision", string(d.Kind))
		t.execute(ctx, d, orders, bal)
	}

	t.state.TouchTick(time.Now())
}

func (t *Trader) execute(ctx context.Context, d models.Decision, orders models.OpenOrderPair, bal models.Balance) {
	switch d.Kind {
	case models.DecisionWait:
		t.logWait(d, orders, bal)

	case models.DecisionSkipSell:
		logger.Info("[DECISION] продажа пропущена: объём %.8f %s меньше минимального %.8f",
			d.Volume, t.assetName, t.cfg.MinTradeSize)

	case models.DecisionPlaceSell:
		txid, err := t.exchange.AddOrder(ctx, t.cfg.Pair, models.SideSell, d.Volume, d.Price)
		if err != nil {
			logger.Error("[ORDER] выставление sell: %v", err)
			t.notifier.Sendf("❗️ Не удалось выставить sell-ордер: %v", err)
			return
		}
		logger.Info("[ORDER] выставлен sell %s: %.8f %s @ $%v (≈$%.2f)",
			txid, d.Volume, t.assetName, d.Price, d.Volume*d.Price)
		t.notifier.Sendf("📤 SELL %s\n%.8f %s @ $%v (≈$%.2f)",
			t.cfg.Pair, d.Volume, t.assetName, d.Price, d.Volume*d.Price)

	case models.DecisionPlaceBuy:
		txid, err := t.exchange.AddOrder(ctx, t.cfg.Pair, models.SideBuy, d.Volume, d.Price)
		if errors.Is(err, krakensvc.ErrInsufficientFunds) {
			// USD заморожены в чём-то ещё (ручной ордер, комиссии) —
			// не фатально, ждём следующего тика.
			logger.Warn("[ORDER] не хватает средств на покупку — ждём следующего тика")
			return
		}
		if err != nil {
			logger.Error("[ORDER] выставление buy: %v", err)
			t.notifier.Sendf("❗️ Не удалось выставить buy-ордер: %v", err)
			return
		}
		logger.Info("[ORDER] выставлен buy %s: %.8f %s @ $%v (≈$%.2f)",
			txid, d.Volume, t.assetName, d.Price, d.Volume*d.Price)
		t.notifier.Sendf("📥 BUY %s\n%.8f %s @ $%v (≈$%.2f)",
			t.cfg.Pair, d.Volume, t.assetName, d.Price, d.Volume*d.Price)
	}
}

func (t *Trader) logWait(d models.Decision, orders models.OpenOrderPair, bal models.Balance) {
	switch d.Reason {
	case models.ReasonSellPending:
		o := orders.Sell
		logger.Info("[WAIT] висит sell %s: %.8f %s @ $%v (≈$%.2f); после исполнения купим ≈%.8f %s @ $%v",
			o.TxID, o.Volume, t.assetName, o.Price, o.Total(),
			t.cfg.DollarsPerTrade/t.cfg.BuyPrice, t.assetName, t.cfg.BuyPrice)
	case models.ReasonBuyPending:
		o := orders.Buy
		sellVolume := t.plannedSellVolume(o.Volume)
		logger.Info("[WAIT] висит buy %s: %.8f %s @ $%v (≈$%.2f); после исполнения продадим ≈%.8f %s @ $%v (≈$%.2f)",
			o.TxID, o.Volume, t.assetName, o.Price, o.Total(),
			sellVolume, t.assetName, t.cfg.SellPrice, sellVolume*t.cfg.SellPrice)
	case models.ReasonStarved:
		logger.Warn("[WAIT] нечем торговать: крипты нет, $%.2f < $%v за сделку — пополните счёт",
			bal.USD, t.cfg.DollarsPerTrade)
	}
}

// plannedSellVolume — объём будущей продажи после исполнения buy-ордера:
// при sell_all продаём всё купленное, иначе DOLLARS_BUY_AMOUNT по курсу
// продажи.
func (t *Trader) plannedSellVolume(buyVolume float64) float64 {
	if t.cfg.SellAll {
		return buyVolume
	}
	return t.cfg.DollarsPerTrade / t.cfg.SellPrice
}

// logPrice — текущая цена для оператора. Берём из ws-стрима, если цена
// свежая; иначе ходим в REST. Любая ошибка тут не влияет на решения.
func (t *Trader) logPrice(ctx context.Context, bal models.Balance) {
	if price, at, ok := t.feed.LastPrice(); ok && time.Since(at) < 2*t.cfg.CheckInterval {
		logger.Info("[PRICE] %s $%v (ws, %s назад) | баланс: %.8f %s / $%.2f",
			t.cfg.Pair, price, time.Since(at).Round(time.Second), bal.Crypto, t.assetName, bal.USD)
		return
	}
	price, err := t.exchange.Ticker(ctx, t.cfg.Pair)
	if err != nil {
		logger.Warn("[PRICE] тикер недоступен: %v", err)
		return
	}
	logger.Info("[PRICE] %s $%v (rest) | баланс: %.8f %s / $%.2f",
		t.cfg.Pair, price, bal.Crypto, t.assetName, bal.USD)
}

// Cleanup — действия на штатной остановке: снять свои открытые ордера,
// показать финальные балансы. Всё best-effort, ошибки только логируются.
func (t *Trader) Cleanup(ctx context.Context) {
	logger.Info("[SHUTDOWN] снимаем открытые ордера по %s", t.cfg.Pair)

	open, err := t.exchange.OpenOrders(ctx)
	if err != nil {
		logger.Error("[SHUTDOWN] открытые ордера: %v", err)
	} else {
		orders := pairOrders(open, t.cfg.Pair)
		for _, o := range []*models.OpenOrder{orders.Sell, orders.Buy} {
			if o == nil {
				continue
			}
			ok, err := t.exchange.CancelOrder(ctx, o.TxID)
			switch {
			case err != nil:
				logger.Error("[SHUTDOWN] отмена %s %s: %v", o.Side, o.TxID, err)
			case !ok:
				logger.Warn("[SHUTDOWN] ордер %s уже не активен", o.TxID)
			default:
				logger.Info("[SHUTDOWN] снят %s %s: %.8f %s @ $%v", o.Side, o.TxID, o.Volume, t.assetName, o.Price)
			}
		}
	}

	raw, err := t.exchange.Balance(ctx)
	if err != nil {
		logger.Error("[SHUTDOWN] финальные балансы: %v", err)
		return
	}
	crypto := assets.BalanceFor(raw, t.codes)
	usd := assets.QuoteBalance(raw)
	logger.Info("[SHUTDOWN] финальный баланс: %.8f %s / $%.2f", crypto, t.assetName, usd)
	t.notifier.Sendf("⏹ Бот остановлен\nБаланс: %.8f %s / $%.2f", crypto, t.assetName, usd)
}
