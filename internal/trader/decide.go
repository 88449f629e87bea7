package trader

import (
	"kraken_bot/internal/models"
	"kraken_bot/internal/modules/config"
)

// Decide — машина состояний жизненного цикла ордеров. Чистая функция от
// среза открытых ордеров и балансов, без I/O; весь тик принимается здесь.
//
// Приоритет состояний:
//  1. sell-pending  -> ждать
//  2. buy-pending   -> ждать
//  3. есть крипта   -> продать (или skip по минимальному объёму,
//     и тогда пыль не блокирует покупку в этом же тике)
//  4. есть USD      -> купить
//  5. иначе         -> ждать пополнения
//
// Больше одного решения возвращается только в ветке skip+buy.
func Decide(cfg *config.Config, orders models.OpenOrderPair, bal models.Balance) []models.Decision {
	if orders.Sell != nil {
		return []models.Decision{models.Wait(models.ReasonSellPending)}
	}
	if orders.Buy != nil {
		return []models.Decision{models.Wait(models.ReasonBuyPending)}
	}

	if bal.Crypto > 0 {
		// sell_all=false сознательно игнорирует размер позиции:
		// продаём ровно DOLLARS_BUY_AMOUNT по курсу продажи.
		volume := cfg.DollarsPerTrade / cfg.SellPrice
		if cfg.SellAll {
			volume = bal.Crypto
		}
		if volume < cfg.MinTradeSize {
			decisions := []models.Decision{models.SkipSell(models.ReasonVolumeTooSmall, volume)}
			if bal.USD >= cfg.DollarsPerTrade {
				decisions = append(decisions, models.PlaceBuy(cfg.DollarsPerTrade/cfg.BuyPrice, cfg.BuyPrice))
			}
			return decisions
		}
		return []models.Decision{models.PlaceSell(volume, cfg.SellPrice)}
	}

	if bal.USD >= cfg.DollarsPerTrade {
		return []models.Decision{models.PlaceBuy(cfg.DollarsPerTrade/cfg.BuyPrice, cfg.BuyPrice)}
	}

	return []models.Decision{models.Wait(models.ReasonStarved)}
}

// pairOrders выбирает из всех открытых ордеров аккаунта ордера нашей пары.
// Штатно по паре висит максимум один; если биржа вернула несколько на одну
// сторону (ручное вмешательство), берём любой — решение от этого не меняется.
func pairOrders(all map[string]models.OpenOrder, pair string) models.OpenOrderPair {
	var res models.OpenOrderPair
	for _, o := range all {
		if o.Pair != pair {
			continue
		}
		switch o.Side {
		case models.SideSell:
			if res.Sell == nil {
				order := o
				res.Sell = &order
			}
		case models.SideBuy:
			if res.Buy == nil {
				order := o
				res.Buy = &order
			}
		}
	}
	return res
}
